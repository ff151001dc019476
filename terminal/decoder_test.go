package terminal

import "testing"

// fakeBackend feeds a single canned chunk then blocks until stopCh closes.
type fakeBackend struct {
	chunks [][]byte
	i      int
}

func (f *fakeBackend) Init() error                     { return nil }
func (f *fakeBackend) Fini()                           {}
func (f *fakeBackend) Size() (int, int)                { return 80, 24 }
func (f *fakeBackend) Write(p []byte) error            { return nil }
func (f *fakeBackend) SetResizeHandler(func(int, int)) {}

func (f *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if f.i < len(f.chunks) {
		c := f.chunks[f.i]
		f.i++
		return c, nil
	}
	<-stopCh
	return nil, nil
}

func decodeOne(t *testing.T, data []byte) Event {
	t.Helper()
	d := newDecoder(&fakeBackend{chunks: [][]byte{data}})
	d.start()
	defer d.stop()
	return <-d.events()
}

func TestDecodePrintableRune(t *testing.T) {
	ev := decodeOne(t, []byte("a"))
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'a' {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecodeArrowKey(t *testing.T) {
	ev := decodeOne(t, []byte("\x1b[A"))
	if ev.Type != EventKey || ev.Key != KeyUp {
		t.Fatalf("expected KeyUp, got %+v", ev)
	}
}

func TestDecodeCtrlC(t *testing.T) {
	ev := decodeOne(t, []byte{0x03})
	if ev.Key != KeyCtrlC {
		t.Fatalf("expected KeyCtrlC, got %+v", ev)
	}
}

func TestDecodeSGRMouseLeftPress(t *testing.T) {
	ev := decodeOne(t, []byte("\x1b[<0;10;5M"))
	if ev.Type != EventMouse {
		t.Fatalf("expected mouse event, got %+v", ev)
	}
	if ev.Mouse.Button != MouseBtnLeft || ev.Mouse.Action != MouseActionPress {
		t.Fatalf("unexpected mouse decode: %+v", ev.Mouse)
	}
	// Wire coordinates are 1-based; decoder must normalize to 0-based.
	if ev.Mouse.X != 9 || ev.Mouse.Y != 4 {
		t.Fatalf("expected normalized coords (9,4), got (%d,%d)", ev.Mouse.X, ev.Mouse.Y)
	}
}

func TestDecodeSGRMouseRelease(t *testing.T) {
	ev := decodeOne(t, []byte("\x1b[<0;1;1m"))
	if ev.Mouse.Action != MouseActionRelease {
		t.Fatalf("expected release action, got %+v", ev.Mouse)
	}
}

func TestDecodeSGRMouseWheel(t *testing.T) {
	ev := decodeOne(t, []byte("\x1b[<64;3;3M"))
	if ev.Mouse.Button != MouseBtnWheelUp {
		t.Fatalf("expected wheel up, got %+v", ev.Mouse)
	}
}

func TestDecodeUTF8Rune(t *testing.T) {
	ev := decodeOne(t, []byte("é"))
	if ev.Rune != 'é' {
		t.Fatalf("expected 'é', got %q", ev.Rune)
	}
}
