package overlay

import (
	"errors"
	"testing"
)

func TestSelectDriverFirstWorkingWins(t *testing.T) {
	incompatible := newStubDriver("a")
	incompatible.compatIdents = []string{"other"}
	failing := newStubDriver("b")
	failing.initErr = errors.New("no device")
	working := newStubDriver("c")
	alsoWorking := newStubDriver("d")

	got, err := selectDriver([]Driver{incompatible, failing, working, alsoWorking}, "video", nil, false)
	if err != nil {
		t.Fatalf("selectDriver() error = %v", err)
	}
	if got != working {
		t.Errorf("selected %q, want %q", got.Ident(), working.Ident())
	}
	if incompatible.inits != 0 {
		t.Error("incompatible driver was initialized")
	}
	if failing.inits != 1 {
		t.Error("failing driver was not tried")
	}
	if alsoWorking.inits != 0 {
		t.Error("selection continued past the first working driver")
	}
}

func TestSelectDriverNoneCompatible(t *testing.T) {
	d := newStubDriver("a")
	d.compatIdents = []string{"other"}
	_, err := selectDriver([]Driver{d}, "video", nil, false)
	if !errors.Is(err, ErrNoDriver) {
		t.Errorf("error = %v, want ErrNoDriver", err)
	}
}

func TestSelectDriverEmpty(t *testing.T) {
	_, err := selectDriver(nil, "video", nil, false)
	if !errors.Is(err, ErrNoDriver) {
		t.Errorf("error = %v, want ErrNoDriver", err)
	}
}

func TestRegisterDriverReplacesSameIdent(t *testing.T) {
	first := newStubDriver("replace-test")
	second := newStubDriver("replace-test")
	RegisterDriver(first)
	t.Cleanup(func() { UnregisterDriver("replace-test") })
	RegisterDriver(second)

	var count int
	for _, d := range RegisteredDrivers() {
		if d.Ident() == "replace-test" {
			count++
			if d != Driver(second) {
				t.Error("registry kept the old driver after replacement")
			}
		}
	}
	if count != 1 {
		t.Errorf("driver registered %d times, want 1", count)
	}
}

func TestRegisterDriverNil(t *testing.T) {
	before := len(RegisteredDrivers())
	RegisterDriver(nil)
	if got := len(RegisteredDrivers()); got != before {
		t.Errorf("registry length = %d after nil register, want %d", got, before)
	}
}

func TestDriverExists(t *testing.T) {
	if DriverExists("exists-test") {
		t.Fatal("driver exists before registration")
	}
	RegisterDriver(newStubDriver("exists-test"))
	t.Cleanup(func() { UnregisterDriver("exists-test") })
	if !DriverExists("exists-test") {
		t.Error("driver missing after registration")
	}
	UnregisterDriver("exists-test")
	if DriverExists("exists-test") {
		t.Error("driver still present after unregister")
	}
}

func TestRegisteredDriversPriorityOrder(t *testing.T) {
	extra := newStubDriver("zz-extra")
	wgpuStub := newStubDriver(IdentWGPU)
	softStub := newStubDriver(IdentSoftware)
	RegisterDriver(extra)
	RegisterDriver(softStub)
	RegisterDriver(wgpuStub)
	t.Cleanup(func() {
		UnregisterDriver("zz-extra")
		UnregisterDriver(IdentSoftware)
		UnregisterDriver(IdentWGPU)
	})

	ordered := RegisteredDrivers()
	pos := make(map[string]int, len(ordered))
	for i, d := range ordered {
		pos[d.Ident()] = i
	}
	if pos[IdentWGPU] > pos[IdentSoftware] {
		t.Errorf("wgpu at %d after software at %d", pos[IdentWGPU], pos[IdentSoftware])
	}
	if pos["zz-extra"] < pos[IdentSoftware] {
		t.Errorf("unprioritized driver at %d before software at %d",
			pos["zz-extra"], pos[IdentSoftware])
	}
}

func TestDisplayInitBindsAndRebinds(t *testing.T) {
	drv := newStubDriver("init-test")
	RegisterDriver(drv)
	t.Cleanup(func() { UnregisterDriver("init-test") })

	d := New(WithVideoIdent("anything"))
	if err := d.Init(nil, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if d.Driver() == nil {
		t.Fatal("no driver bound after Init")
	}
	if !d.FramebufferDirty() {
		t.Error("framebuffer not dirty after Init")
	}

	// A second Init frees the old binding first.
	if err := d.Init(nil, false); err != nil {
		t.Fatalf("re-Init() error = %v", err)
	}
	if drv.frees != 1 {
		t.Errorf("old driver freed %d times on rebind, want 1", drv.frees)
	}
	d.Free()
}

func TestDisplayInitNoDriver(t *testing.T) {
	failing := newStubDriver("fail-test")
	failing.initErr = errors.New("no device")
	RegisterDriver(failing)
	t.Cleanup(func() { UnregisterDriver("fail-test") })

	d := New(WithVideoIdent("nonexistent-video"))
	// Make every registered driver incompatible with this ident.
	failing.compatIdents = []string{"something-else"}

	err := d.Init(nil, false)
	if !errors.Is(err, ErrNoDriver) {
		t.Errorf("Init() error = %v, want ErrNoDriver", err)
	}
	if d.Driver() != nil {
		t.Error("driver bound after failed Init")
	}
}
