package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  int
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded++
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &stubFeature{name: "importer", enabled: true}
	off := &stubFeature{name: "purchasing", enabled: false}
	dup := &stubFeature{name: "importer", enabled: true}

	mgr := NewManager()
	mgr.Register(on)
	mgr.Register(off)
	mgr.Register(dup)

	assert.Len(t, mgr.Features(), 2)
	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.Equal(t, 1, on.loaded)
	assert.Equal(t, 0, off.loaded)
	assert.Equal(t, 0, dup.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	bad := &stubFeature{name: "integrity", enabled: true, err: errors.New("no db")}
	after := &stubFeature{name: "inventory", enabled: true}

	mgr := NewManager()
	mgr.Register(bad)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.EqualError(t, err, "failed to load feature integrity: no db")
	assert.Equal(t, 0, after.loaded)
}
