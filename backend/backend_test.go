package backend

import (
	"testing"

	"github.com/flintkit/flint"
)

type fakeBackend struct {
	name string
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Init() error  { return nil }
func (f *fakeBackend) Close()       {}
func (f *fakeBackend) NewDevice(w, h int) (flint.Device, error) {
	return flint.NewImageDevice(flint.NewPixmap(w, h)), nil
}

func TestRegisterAndGet(t *testing.T) {
	Register("fake", func() GraphicsBackend { return &fakeBackend{name: "fake"} })
	defer Unregister("fake")

	if !IsRegistered("fake") {
		t.Error("IsRegistered(fake) = false after Register")
	}
	b := Get("fake")
	if b == nil {
		t.Fatal("Get(fake) = nil")
	}
	if b.Name() != "fake" {
		t.Errorf("Name() = %q, want fake", b.Name())
	}
}

func TestGetUnknown(t *testing.T) {
	if b := Get("no-such-backend"); b != nil {
		t.Errorf("Get(unknown) = %v, want nil", b)
	}
}

func TestUnregister(t *testing.T) {
	Register("temp", func() GraphicsBackend { return &fakeBackend{name: "temp"} })
	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("IsRegistered(temp) = true after Unregister")
	}
}

func TestAvailableIncludesSoftware(t *testing.T) {
	found := false
	for _, name := range Available() {
		if name == BackendSoftware {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, software backend missing", Available())
	}
}

func TestDefaultFindsBackend(t *testing.T) {
	b := Default()
	if b == nil {
		t.Fatal("Default() = nil with software registered")
	}
}

func TestSoftwareBackendLifecycle(t *testing.T) {
	b := NewSoftwareBackend()

	if _, err := b.NewDevice(10, 10); err != ErrNotInitialized {
		t.Errorf("NewDevice before Init: err = %v, want ErrNotInitialized", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	dev, err := b.NewDevice(16, 12)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	img, ok := dev.(*flint.ImageDevice)
	if !ok {
		t.Fatalf("device type = %T, want *flint.ImageDevice", dev)
	}
	if img.Pixmap().Width() != 16 || img.Pixmap().Height() != 12 {
		t.Errorf("pixmap size = %dx%d, want 16x12",
			img.Pixmap().Width(), img.Pixmap().Height())
	}
}

func TestSoftwareBackendDrives(t *testing.T) {
	b := NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	dev, err := b.NewDevice(10, 10)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	d := flint.New(dev)
	d.SetColor(flint.Red)
	d.Rectf(1, 1, 3, 3)

	pm := dev.(*flint.ImageDevice).Pixmap()
	if pm.GetPixel(2, 2) != flint.Red {
		t.Error("driver output did not reach the backend pixmap")
	}
}

func TestInitDefault(t *testing.T) {
	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	defer b.Close()
	if b.Name() == "" {
		t.Error("initialized backend has no name")
	}
}
