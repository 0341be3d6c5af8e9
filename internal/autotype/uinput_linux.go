//go:build linux

package autotype

import (
	"fmt"
	"sort"

	"github.com/atotto/clipboard"
	evdev "github.com/holoplot/go-evdev"
)

// NewSystemInjector picks the best injection path for this host: a virtual
// uinput keyboard when /dev/uinput is writable, the clipboard otherwise.
func NewSystemInjector() (Injector, string, error) {
	if inj, err := newUinputInjector(); err == nil {
		return inj, "uinput", nil
	}
	if clipboard.Unsupported {
		return nil, "", fmt.Errorf("no uinput access and no clipboard helper on this host")
	}
	return ClipboardInjector{}, "clipboard", nil
}

// uinputInjector types through a virtual keyboard device. Runes outside its
// key map (accented characters, typographic punctuation) force a clipboard
// fallback for the whole text, so phrase content is never silently mangled.
type uinputInjector struct {
	dev      *evdev.InputDevice
	fallback ClipboardInjector
}

func newUinputInjector() (*uinputInjector, error) {
	codes := make(map[evdev.EvCode]struct{}, len(runeKeys)+2)
	codes[evdev.KEY_LEFTSHIFT] = struct{}{}
	for _, k := range runeKeys {
		codes[k.code] = struct{}{}
	}
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: sortedCodes(codes),
	}

	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}

	dev, err := evdev.CreateDevice("frasecli-typer", id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}
	return &uinputInjector{dev: dev}, nil
}

func (u *uinputInjector) TypeText(text string) error {
	keys := make([]runeKey, 0, len(text))
	for _, r := range text {
		k, ok := runeKeys[r]
		if !ok {
			return u.fallback.TypeText(text)
		}
		keys = append(keys, k)
	}

	for _, k := range keys {
		if err := u.pressKey(k); err != nil {
			return fmt.Errorf("failed to inject key events: %w", err)
		}
	}
	return nil
}

func (u *uinputInjector) pressKey(k runeKey) error {
	if k.shift {
		if err := u.writeKey(evdev.KEY_LEFTSHIFT, 1); err != nil {
			return err
		}
	}
	if err := u.writeKey(k.code, 1); err != nil {
		return err
	}
	if err := u.writeKey(k.code, 0); err != nil {
		return err
	}
	if k.shift {
		if err := u.writeKey(evdev.KEY_LEFTSHIFT, 0); err != nil {
			return err
		}
	}
	return nil
}

func (u *uinputInjector) writeKey(code evdev.EvCode, value int32) error {
	events := []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: code, Value: value},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	}
	for i := range events {
		if err := u.dev.WriteOne(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *uinputInjector) Close() error {
	if u.dev == nil {
		return nil
	}
	return u.dev.Close()
}

type runeKey struct {
	code  evdev.EvCode
	shift bool
}

var runeKeys = buildRuneKeys()

func buildRuneKeys() map[rune]runeKey {
	m := make(map[rune]runeKey, 128)

	letters := map[rune]evdev.EvCode{
		'a': evdev.KEY_A, 'b': evdev.KEY_B, 'c': evdev.KEY_C, 'd': evdev.KEY_D,
		'e': evdev.KEY_E, 'f': evdev.KEY_F, 'g': evdev.KEY_G, 'h': evdev.KEY_H,
		'i': evdev.KEY_I, 'j': evdev.KEY_J, 'k': evdev.KEY_K, 'l': evdev.KEY_L,
		'm': evdev.KEY_M, 'n': evdev.KEY_N, 'o': evdev.KEY_O, 'p': evdev.KEY_P,
		'q': evdev.KEY_Q, 'r': evdev.KEY_R, 's': evdev.KEY_S, 't': evdev.KEY_T,
		'u': evdev.KEY_U, 'v': evdev.KEY_V, 'w': evdev.KEY_W, 'x': evdev.KEY_X,
		'y': evdev.KEY_Y, 'z': evdev.KEY_Z,
	}
	for r, code := range letters {
		m[r] = runeKey{code: code}
		m[r-'a'+'A'] = runeKey{code: code, shift: true}
	}

	digits := []evdev.EvCode{
		evdev.KEY_0, evdev.KEY_1, evdev.KEY_2, evdev.KEY_3, evdev.KEY_4,
		evdev.KEY_5, evdev.KEY_6, evdev.KEY_7, evdev.KEY_8, evdev.KEY_9,
	}
	shiftedDigits := ")!@#$%^&*("
	for i, code := range digits {
		m[rune('0'+i)] = runeKey{code: code}
		m[rune(shiftedDigits[i])] = runeKey{code: code, shift: true}
	}

	punct := map[rune]runeKey{
		' ':  {code: evdev.KEY_SPACE},
		'\n': {code: evdev.KEY_ENTER},
		'\t': {code: evdev.KEY_TAB},
		'-':  {code: evdev.KEY_MINUS},
		'_':  {code: evdev.KEY_MINUS, shift: true},
		'=':  {code: evdev.KEY_EQUAL},
		'+':  {code: evdev.KEY_EQUAL, shift: true},
		'[':  {code: evdev.KEY_LEFTBRACE},
		'{':  {code: evdev.KEY_LEFTBRACE, shift: true},
		']':  {code: evdev.KEY_RIGHTBRACE},
		'}':  {code: evdev.KEY_RIGHTBRACE, shift: true},
		';':  {code: evdev.KEY_SEMICOLON},
		':':  {code: evdev.KEY_SEMICOLON, shift: true},
		'\'': {code: evdev.KEY_APOSTROPHE},
		'"':  {code: evdev.KEY_APOSTROPHE, shift: true},
		',':  {code: evdev.KEY_COMMA},
		'<':  {code: evdev.KEY_COMMA, shift: true},
		'.':  {code: evdev.KEY_DOT},
		'>':  {code: evdev.KEY_DOT, shift: true},
		'/':  {code: evdev.KEY_SLASH},
		'?':  {code: evdev.KEY_SLASH, shift: true},
		'\\': {code: evdev.KEY_BACKSLASH},
		'|':  {code: evdev.KEY_BACKSLASH, shift: true},
		'`':  {code: evdev.KEY_GRAVE},
		'~':  {code: evdev.KEY_GRAVE, shift: true},
	}
	for r, k := range punct {
		m[r] = k
	}

	return m
}

func sortedCodes(values map[evdev.EvCode]struct{}) []evdev.EvCode {
	codes := make([]evdev.EvCode, 0, len(values))
	for code := range values {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i] < codes[j]
	})
	return codes
}
