package main

import (
	"flag"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/vulkan-negotiation/config"
	"github.com/vkngwrapper/vulkan-negotiation/render"
	"github.com/vkngwrapper/vulkan-negotiation/vkng"
)

func init() {
	runtime.LockOSThread()
}

var (
	configFile = flag.String("config", "", "Read settings from a dotenv file")
	list       = flag.Bool("list", false, "Rate every physical device and exit")
)

type NegotiationApplication struct {
	cfg config.Config
	log *logrus.Logger

	window  *vkng.Window
	context *render.Context
}

func (app *NegotiationApplication) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.cleanup()

	instance, err := app.createInstance()
	if err != nil {
		return err
	}

	opts := render.OptionsFromConfig(app.cfg, app.log)
	if *list {
		defer instance.Destroy()
		return app.listDevices(instance, opts)
	}

	app.context, err = render.Open(instance, app.window, opts)
	if err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *NegotiationApplication) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	window, err := vkng.OpenWindow(app.cfg)
	if err != nil {
		return err
	}
	app.window = window
	return nil
}

func (app *NegotiationApplication) createInstance() (*vkng.Instance, error) {
	loader, err := vkng.NewLoader()
	if err != nil {
		return nil, err
	}

	plan, err := vkng.PlanInstance(loader, app.window, app.cfg)
	if err != nil {
		return nil, err
	}

	app.log.WithFields(logrus.Fields{
		"extensions": plan.Extensions,
		"layers":     plan.Layers,
	}).Debug("creating instance")
	return vkng.CreateInstance(loader, plan, app.cfg, app.log)
}

func (app *NegotiationApplication) listDevices(instance *vkng.Instance, opts render.Options) error {
	candidates, err := render.Survey(instance, app.window, opts)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		entry := app.log.WithFields(logrus.Fields{
			"device": candidate.Properties.Name,
			"type":   candidate.Properties.Type,
			"score":  candidate.Score,
		})
		if candidate.Suitable() {
			entry.Info("suitable")
		} else {
			entry.WithField("reason", candidate.Reason).Info("rejected")
		}
	}
	return nil
}

func (app *NegotiationApplication) mainLoop() error {
appLoop:
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				break appLoop
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_RESTORED:
					if _, err := app.context.Recreate(); err != nil {
						return err
					}
				}
			}
		}
		sdl.Delay(16)
	}

	return nil
}

func (app *NegotiationApplication) cleanup() {
	if app.context != nil {
		app.context.Close()
	}

	if app.window != nil {
		app.window.Destroy()
	}
	sdl.Quit()
}

func main() {
	flag.Parse()

	var files []string
	if *configFile != "" {
		files = append(files, *configFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		logrus.Fatalf("%+v\n", err)
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)

	app := &NegotiationApplication{cfg: cfg, log: log}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
