package render

import "github.com/sirupsen/logrus"

type release struct {
	name string
	fn   func()
}

// teardown releases resources in the reverse of the order they were pushed
type teardown struct {
	releases []release
}

func (t *teardown) push(name string, fn func()) {
	t.releases = append(t.releases, release{name: name, fn: fn})
}

func (t *teardown) len() int {
	return len(t.releases)
}

// run releases everything and leaves the stack empty, so running twice is harmless
func (t *teardown) run(log logrus.FieldLogger) {
	for len(t.releases) > 0 {
		last := t.releases[len(t.releases)-1]
		t.releases = t.releases[:len(t.releases)-1]

		log.WithField("resource", last.name).Debug("destroying")
		last.fn()
	}
}
