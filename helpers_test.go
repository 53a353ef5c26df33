package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and constructors used across test files.

var errRuntime = errors.New("runtime error")

// hookObserver counts PostConstruct calls. Each test case owns its own observer.
type hookObserver struct {
	calls int
}

// dodgyDependency can never be constructed.
type dodgyDependency struct{}

func newDodgyDependency() (*dodgyDependency, error) {
	return nil, errRuntime
}

type classWithBrokenDependency struct {
	dodgy    *dodgyDependency
	observer *hookObserver
}

func newClassWithBrokenDependency(d *dodgyDependency, o *hookObserver) *classWithBrokenDependency {
	return &classWithBrokenDependency{dodgy: d, observer: o}
}

func (c *classWithBrokenDependency) PostConstruct() error {
	c.observer.calls++
	return nil
}

type classWithStringBinding struct {
	xyz      string
	observer *hookObserver
}

func newClassWithStringBinding(xyz string, o *hookObserver) *classWithStringBinding {
	return &classWithStringBinding{xyz: xyz, observer: o}
}

func (c *classWithStringBinding) PostConstruct() error {
	c.observer.calls++
	return nil
}

type simple struct {
	observer    *hookObserver
	constructed bool
}

func newSimple(o *hookObserver) *simple {
	return &simple{observer: o, constructed: true}
}

func (s *simple) PostConstruct() error {
	s.observer.calls++
	return nil
}

type plainConfig struct {
	Dir string
}

func newPlainConfig(dir string) *plainConfig {
	return &plainConfig{Dir: dir}
}

type plainService struct {
	Config *plainConfig
}

func newPlainService(cfg *plainConfig) *plainService {
	return &plainService{Config: cfg}
}

var (
	observerKey    = KeyOf[*hookObserver]()
	dodgyKey       = KeyOf[*dodgyDependency]()
	brokenKey      = KeyOf[*classWithBrokenDependency]()
	stringBoundKey = KeyOf[*classWithStringBinding]()
	xyzKey         = NamedKey[string]("xyz")
	simpleKey      = KeyOf[*simple]()
	dirKey         = NamedKey[string]("WorkingDir")
	configKey      = KeyOf[*plainConfig]()
	serviceKey     = KeyOf[*plainService]()
)

// newTestContainer mirrors the module of the original listener test: every binding
// implementing PostConstructor gets the post-construct listener.
func newTestContainer(t *testing.T, o *hookObserver, opts ...Option) *Container {
	t.Helper()
	c := New(opts...)
	require.NoError(t, c.RegisterInstance(observerKey, o))
	require.NoError(t, c.Register(dodgyKey, newDodgyDependency))
	require.NoError(t, c.Register(brokenKey, newClassWithBrokenDependency, dodgyKey, observerKey))
	require.NoError(t, c.Register(stringBoundKey, newClassWithStringBinding, xyzKey, observerKey))
	require.NoError(t, c.Register(simpleKey, newSimple, observerKey))
	require.NoError(t, c.RegisterPostConstruct())
	return c
}
