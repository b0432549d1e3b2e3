package tui

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/grindlemire/tuikit/internal/debug"
)

// maxSequenceLen bounds an escape sequence before it is discarded as garbage.
const maxSequenceLen = 64

var pasteEnd = []byte("\x1b[201~")

type decodeState uint8

const (
	stateNormal decodeState = iota
	stateEscape             // ESC seen
	stateCSI                // ESC [ seen, accumulating parameters
	stateSS3                // ESC O seen
	stateX10                // ESC [ M seen, reading three raw bytes
	stateUTF8               // inside a multi-byte rune
	statePaste              // inside a bracketed paste body
)

// Decoder turns raw terminal input into events. It is a byte-at-a-time
// state machine, so input may be split anywhere: an incomplete sequence or
// rune at the end of one Feed is completed by the next.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	state decodeState
	seq   []byte // bytes of the sequence or rune in progress
	need  int    // continuation bytes still missing in stateUTF8
	alt   bool   // the rune in progress was preceded by ESC
	paste []byte

	events    []Event
	discarded int
}

// NewDecoder returns a decoder in the ground state.
func NewDecoder() *Decoder {
	return &Decoder{seq: make([]byte, 0, maxSequenceLen)}
}

// Feed decodes p and returns the events it completed.
func (d *Decoder) Feed(p []byte) []Event {
	for _, b := range p {
		d.step(b)
	}
	return d.take()
}

// Idle is called when no input has arrived for a while. A lone ESC is
// resolved to KeyEscape, and a bare "ESC [" or "ESC O" to Alt+[ or Alt+O.
// Longer incomplete sequences stay pending.
func (d *Decoder) Idle() []Event {
	switch {
	case d.state == stateEscape:
		d.emit(KeyPress{Key: KeyEscape})
		d.reset()
	case d.state == stateCSI && len(d.seq) == 2:
		d.emit(KeyPress{Key: KeyRune, Rune: '[', Mod: ModAlt})
		d.reset()
	case d.state == stateSS3:
		d.emit(KeyPress{Key: KeyRune, Rune: 'O', Mod: ModAlt})
		d.reset()
	}
	return d.take()
}

// Pending returns how many input bytes are retained awaiting completion.
func (d *Decoder) Pending() int {
	return len(d.seq) + len(d.paste)
}

// Discarded returns how many malformed or unsupported sequences were dropped.
func (d *Decoder) Discarded() int {
	return d.discarded
}

// Reset drops any partial input.
func (d *Decoder) Reset() {
	d.reset()
	d.paste = nil
	d.events = nil
}

func (d *Decoder) take() []Event {
	out := d.events
	d.events = nil
	return out
}

func (d *Decoder) emit(ev Event) {
	d.events = append(d.events, ev)
}

func (d *Decoder) reset() {
	d.state = stateNormal
	d.seq = d.seq[:0]
	d.need = 0
	d.alt = false
}

// discard drops the sequence in progress and returns to the ground state.
func (d *Decoder) discard(reason string) {
	err := &DecodeError{Seq: bytes.Clone(d.seq), Reason: reason}
	d.discarded++
	debug.Log("decoder: %v", err)
	d.reset()
}

func (d *Decoder) step(b byte) {
	switch d.state {
	case stateNormal:
		d.stepNormal(b)
	case stateEscape:
		d.stepEscape(b)
	case stateCSI:
		d.stepCSI(b)
	case stateSS3:
		d.seq = append(d.seq, b)
		if key := parseSS3(b); key != KeyNone {
			d.emit(KeyPress{Key: key})
			d.reset()
			return
		}
		d.discard("unknown SS3 final byte")
	case stateX10:
		d.seq = append(d.seq, b)
		if len(d.seq) == 6 {
			d.finishX10()
		}
	case stateUTF8:
		d.stepUTF8(b)
	case statePaste:
		d.paste = append(d.paste, b)
		if bytes.HasSuffix(d.paste, pasteEnd) {
			text := d.paste[:len(d.paste)-len(pasteEnd)]
			d.emit(Paste{Text: string(text)})
			d.paste = nil
			d.reset()
		}
	}
}

func (d *Decoder) stepNormal(b byte) {
	switch {
	case b == 0x1b:
		d.state = stateEscape
		d.seq = append(d.seq[:0], b)
	case b < 0x20 || b == 0x7f:
		d.emit(controlKey(b))
	case b < 0x80:
		d.emit(KeyPress{Key: KeyRune, Rune: rune(b)})
	default:
		d.startUTF8(b)
	}
}

func (d *Decoder) stepEscape(b byte) {
	switch {
	case b == '[':
		d.state = stateCSI
		d.seq = append(d.seq, b)
	case b == 'O':
		d.state = stateSS3
		d.seq = append(d.seq, b)
	case b == 0x1b:
		// The first ESC was a key on its own.
		d.emit(KeyPress{Key: KeyEscape})
	case b < 0x20 || b == 0x7f:
		k := controlKey(b)
		k.Mod |= ModAlt
		d.emit(k)
		d.reset()
	case b < 0x80:
		d.emit(KeyPress{Key: KeyRune, Rune: rune(b), Mod: ModAlt})
		d.reset()
	default:
		d.alt = true
		d.startUTF8(b)
	}
}

func (d *Decoder) startUTF8(b byte) {
	var n int
	switch {
	case b&0xE0 == 0xC0:
		n = 2
	case b&0xF0 == 0xE0:
		n = 3
	case b&0xF8 == 0xF0:
		n = 4
	default:
		d.seq = append(d.seq[:0], b)
		d.discard("invalid UTF-8 lead byte")
		return
	}
	d.state = stateUTF8
	d.seq = append(d.seq[:0], b)
	d.need = n - 1
}

func (d *Decoder) stepUTF8(b byte) {
	if b&0xC0 != 0x80 {
		d.discard("truncated UTF-8 sequence")
		d.step(b)
		return
	}
	d.seq = append(d.seq, b)
	d.need--
	if d.need > 0 {
		return
	}
	// A literal U+FFFD decodes to RuneError with its full width.
	r, size := utf8.DecodeRune(d.seq)
	if r == utf8.RuneError && size != len(d.seq) {
		d.discard("invalid UTF-8 sequence")
		return
	}
	k := KeyPress{Key: KeyRune, Rune: r}
	if d.alt {
		k.Mod = ModAlt
	}
	d.emit(k)
	d.reset()
}

func (d *Decoder) stepCSI(b byte) {
	if b < 0x20 || b > 0x7e {
		// A control byte cannot appear inside a sequence; the sequence was
		// cut short, so drop it and start over with this byte.
		d.discard("interrupted escape sequence")
		d.step(b)
		return
	}
	d.seq = append(d.seq, b)
	switch {
	case b == 'M' && len(d.seq) == 3:
		d.state = stateX10
	case b >= 0x40:
		d.finishCSI()
	case len(d.seq) >= maxSequenceLen:
		d.discard("sequence too long")
	}
}

// finishCSI decodes a complete ESC [ params final sequence.
func (d *Decoder) finishCSI() {
	body := d.seq[2 : len(d.seq)-1]
	final := d.seq[len(d.seq)-1]

	if len(body) > 0 && body[0] == '<' {
		params, ok := parseParams(body[1:])
		if !ok || len(params) != 3 || (final != 'M' && final != 'm') {
			d.discard("malformed SGR mouse report")
			return
		}
		d.emit(mouseReport(params[0], params[1]-1, params[2]-1, final == 'm'))
		d.reset()
		return
	}

	params, ok := parseParams(body)
	if !ok {
		d.discard("unsupported parameters")
		return
	}

	if final == '~' && len(params) == 1 {
		switch params[0] {
		case 200:
			d.reset()
			d.state = statePaste
			d.paste = d.paste[:0]
			return
		case 201:
			// End of a paste we never saw start.
			d.reset()
			return
		}
	}

	key, mod := parseCSI(params, final)
	if key == KeyNone {
		d.discard("unrecognised final byte")
		return
	}
	d.emit(KeyPress{Key: key, Mod: mod})
	d.reset()
}

// finishX10 decodes the legacy ESC [ M Cb Cx Cy report, where every value
// is offset by 32 and coordinates are 1-based.
func (d *Decoder) finishX10() {
	cb := int(d.seq[3]) - 32
	x := int(d.seq[4]) - 33
	y := int(d.seq[5]) - 33
	if cb < 0 {
		d.discard("malformed X10 mouse report")
		return
	}
	d.emit(mouseReport(cb, x, y, false))
	d.reset()
}

// parseParams parses digits separated by ';'. Empty parameters are zero.
// Private markers and intermediate bytes are rejected.
func parseParams(body []byte) ([]int, bool) {
	if len(body) == 0 {
		return nil, true
	}
	params := make([]int, 0, 4)
	cur := 0
	for _, b := range body {
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			if cur > 1<<16 {
				return nil, false
			}
		case b == ';':
			params = append(params, cur)
			cur = 0
		default:
			return nil, false
		}
	}
	return append(params, cur), true
}

// mouseReport builds a MousePress from a button code. The code layout is
// shared by SGR and X10 reports:
//
//	bits 0-1: button (0=left, 1=middle, 2=right, 3=release/none)
//	bit 2: shift
//	bit 3: meta/alt
//	bit 4: ctrl
//	bit 5: motion
//	bit 6: wheel (64=up, 65=down)
func mouseReport(cb, x, y int, release bool) MousePress {
	ev := MousePress{X: max(x, 0), Y: max(y, 0)}

	if cb&4 != 0 {
		ev.Mod |= ModShift
	}
	if cb&8 != 0 {
		ev.Mod |= ModAlt
	}
	if cb&16 != 0 {
		ev.Mod |= ModCtrl
	}

	if cb&64 != 0 {
		ev.Action = MouseScroll
		if cb&1 != 0 {
			ev.Button = MouseWheelDown
			ev.ScrollDelta = 1
		} else {
			ev.Button = MouseWheelUp
			ev.ScrollDelta = -1
		}
		return ev
	}

	switch cb & 3 {
	case 0:
		ev.Button = MouseLeft
	case 1:
		ev.Button = MouseMiddle
	case 2:
		ev.Button = MouseRight
	case 3:
		ev.Button = MouseNone
	}

	switch {
	case cb&32 != 0 && ev.Button == MouseNone:
		ev.Action = MouseMove
	case cb&32 != 0:
		ev.Action = MouseDrag
	case release || ev.Button == MouseNone:
		ev.Action = MouseReleased
	default:
		ev.Action = MousePressed
	}
	return ev
}

// controlKey converts a control character (0x00-0x1F, 0x7F) to a KeyPress.
func controlKey(b byte) KeyPress {
	switch b {
	case 0x00: // Ctrl+Space or Ctrl+@
		return KeyPress{Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	case 0x08, 0x7f: // Ctrl+H or DEL, backspace depending on the terminal
		return KeyPress{Key: KeyBackspace}
	case 0x09:
		return KeyPress{Key: KeyTab}
	case 0x0a, 0x0d: // LF or CR
		return KeyPress{Key: KeyEnter}
	case 0x1b:
		return KeyPress{Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyPress{Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}
	}
	// 0x1c-0x1f: Ctrl+\ ] ^ _
	return KeyPress{Key: KeyRune, Rune: rune(b + 0x40), Mod: ModCtrl}
}

// parseCSI maps a complete CSI sequence to a key.
// Returns KeyNone for anything it does not recognise.
func parseCSI(params []int, final byte) (Key, Modifier) {
	mod := ModNone

	// xterm-style modifiers: CSI 1;mod X or CSI n;mod ~
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case 'Z':
		// Backtab
		return KeyTab, mod | ModShift
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		if key, ok := tildeKeys[params[0]]; ok {
			return key, mod
		}
	}
	return KeyNone, ModNone
}

// tildeKeys maps CSI n ~ codes.
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseSS3 parses an SS3 final byte (ESC O x).
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter.
// The parameter is encoded as: 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0)
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}

	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// Decode returns the events decoded from r as a lazy sequence. Every call
// starts a fresh Decoder, so ranging over it twice shares no decoder state.
// The sequence ends after r returns io.EOF; any other read error is yielded
// as the final element. A trailing lone ESC is flushed as KeyEscape at EOF.
func Decode(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		d := NewDecoder()
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			for _, ev := range d.Feed(buf[:n]) {
				if !yield(ev, nil) {
					return
				}
			}
			if err == nil {
				continue
			}
			if errors.Is(err, io.EOF) {
				for _, ev := range d.Idle() {
					if !yield(ev, nil) {
						return
					}
				}
				return
			}
			yield(nil, err)
			return
		}
	}
}
