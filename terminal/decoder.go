package terminal

import "time"

// decoder turns a stream of raw input bytes into Events: printable runes,
// control characters, CSI/SS3 escape sequences, and SGR mouse reports.
// It owns no I/O of its own; Backend.Read feeds it byte chunks.
type decoder struct {
	backend Backend
	emit    chan Event
	stopCh  chan struct{}

	// Embedded buffer for the rare split-escape-sequence case.
	escBuf [32]byte
}

// escapeTimeout bounds how long the decoder waits for the remainder of a
// split escape sequence before emitting a standalone ESC key.
const escapeTimeout = 50 * time.Millisecond

func newDecoder(backend Backend) *decoder {
	return &decoder{
		backend: backend,
		emit:    make(chan Event, 64),
		stopCh:  make(chan struct{}),
	}
}

func (d *decoder) events() <-chan Event {
	return d.emit
}

func (d *decoder) start() {
	go d.readLoop()
}

func (d *decoder) stop() {
	close(d.stopCh)
}

func (d *decoder) readLoop() {
	for {
		data, err := d.backend.Read(d.stopCh)
		if err != nil {
			d.sendEvent(Event{Type: EventError, Err: err})
			return
		}
		if data == nil {
			select {
			case <-d.stopCh:
				d.sendEvent(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}
		d.parseInput(data)
	}
}

func (d *decoder) sendEvent(ev Event) {
	select {
	case d.emit <- ev:
	default:
		// Channel full, drop rather than block the reader goroutine.
	}
}

func (d *decoder) parseInput(data []byte) {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		if b >= 0x20 && b < 0x7f {
			d.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x1b {
			consumed, ev := d.parseEscape(data[i:])
			if consumed > 0 {
				d.sendEvent(ev)
				i += consumed
				continue
			}
			d.sendEvent(Event{Type: EventKey, Key: KeyEscape})
			i++
			continue
		}

		if b < 0x20 {
			d.sendEvent(parseControl(b))
			i++
			continue
		}

		if b == 0x7f {
			d.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		rn, size := decodeRune(data[i:])
		if size > 0 {
			d.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
			i += size
		} else {
			i++
		}
	}
}

func (d *decoder) parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		extra := d.readMoreWithTimeout()
		if extra == 0 {
			return 0, Event{}
		}
		combined := make([]byte, len(data)+extra)
		copy(combined, data)
		copy(combined[len(data):], d.escBuf[:extra])
		data = combined
	}

	if data[1] == '[' {
		return d.parseCSI(data)
	}
	if data[1] == 'O' {
		return d.parseSS3(data)
	}
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	return 0, Event{}
}

// parseCSI parses a CSI sequence without allocation, dispatching to the SGR
// mouse decoder when the sequence carries the '<' private marker.
func (d *decoder) parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	if data[2] == '<' {
		return parseSGRMouse(data)
	}

	end := 2
	maxScan := len(data)
	if maxScan > 24 {
		maxScan = 24
	}

	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			break
		}
		if b < 0x20 || b > 0x7e {
			return 0, Event{}
		}
		end++
	}

	if key, mod, ok := lookupCSI(data[2:end]); ok {
		return end, Event{Type: EventKey, Key: key, Modifiers: mod}
	}

	return 0, Event{}
}

func (d *decoder) parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	return 0, Event{}
}

func (d *decoder) readMoreWithTimeout() int {
	timer := time.NewTimer(escapeTimeout)
	defer timer.Stop()

	resultCh := make(chan []byte, 1)
	go func() {
		data, err := d.backend.Read(d.stopCh)
		if err == nil {
			resultCh <- data
		} else {
			resultCh <- nil
		}
	}()

	select {
	case data := <-resultCh:
		n := copy(d.escBuf[:], data)
		return n
	case <-timer.C:
		return 0
	}
}

// parseControl maps control characters to keys.
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyCtrlSpace}
	case 0x01:
		return Event{Type: EventKey, Key: KeyCtrlA}
	case 0x02:
		return Event{Type: EventKey, Key: KeyCtrlB}
	case 0x03:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case 0x04:
		return Event{Type: EventKey, Key: KeyCtrlD}
	case 0x05:
		return Event{Type: EventKey, Key: KeyCtrlE}
	case 0x06:
		return Event{Type: EventKey, Key: KeyCtrlF}
	case 0x07:
		return Event{Type: EventKey, Key: KeyCtrlG}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x0b:
		return Event{Type: EventKey, Key: KeyCtrlK}
	case 0x0c:
		return Event{Type: EventKey, Key: KeyCtrlL}
	case 0x0e:
		return Event{Type: EventKey, Key: KeyCtrlN}
	case 0x0f:
		return Event{Type: EventKey, Key: KeyCtrlO}
	case 0x10:
		return Event{Type: EventKey, Key: KeyCtrlP}
	case 0x11:
		return Event{Type: EventKey, Key: KeyCtrlQ}
	case 0x12:
		return Event{Type: EventKey, Key: KeyCtrlR}
	case 0x13:
		return Event{Type: EventKey, Key: KeyCtrlS}
	case 0x14:
		return Event{Type: EventKey, Key: KeyCtrlT}
	case 0x15:
		return Event{Type: EventKey, Key: KeyCtrlU}
	case 0x16:
		return Event{Type: EventKey, Key: KeyCtrlV}
	case 0x17:
		return Event{Type: EventKey, Key: KeyCtrlW}
	case 0x18:
		return Event{Type: EventKey, Key: KeyCtrlX}
	case 0x19:
		return Event{Type: EventKey, Key: KeyCtrlY}
	case 0x1a:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	case 0x1c:
		return Event{Type: EventKey, Key: KeyCtrlBackslash}
	case 0x1d:
		return Event{Type: EventKey, Key: KeyCtrlBracketRight}
	case 0x1e:
		return Event{Type: EventKey, Key: KeyCtrlCaret}
	case 0x1f:
		return Event{Type: EventKey, Key: KeyCtrlUnderscore}
	}
	return Event{Type: EventKey, Key: KeyNone}
}

// decodeRune decodes the first UTF-8 rune from data.
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1
	}

	return r, size
}
