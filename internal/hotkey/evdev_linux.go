//go:build linux

package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
)

// NewSystemSource opens all readable non-virtual input devices with key
// capabilities and merges their key-down events into one stream.
func NewSystemSource() (Source, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	var devices []*evdev.InputDevice
	for _, path := range paths {
		dev, err := evdev.Open(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, nameErr := dev.Name(); nameErr == nil && actualName != "" {
			name = actualName
		}
		if deviceIsVirtual(name) || len(dev.CapableEvents(evdev.EV_KEY)) == 0 {
			_ = dev.Close()
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable input devices with key events found")
	}

	s := &evdevSource{
		devices: devices,
		keys:    make(chan string, 16),
		done:    make(chan struct{}),
	}
	for _, dev := range devices {
		s.readersWG.Add(1)
		go s.readLoop(dev)
	}
	return s, nil
}

type evdevSource struct {
	devices   []*evdev.InputDevice
	keys      chan string
	done      chan struct{}
	closeOnce sync.Once
	readersWG sync.WaitGroup
}

func (s *evdevSource) Next() (string, error) {
	select {
	case key := <-s.keys:
		return key, nil
	case <-s.done:
		return "", fmt.Errorf("hotkey source closed")
	}
}

func (s *evdevSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		for _, dev := range s.devices {
			_ = dev.Close()
		}
		s.readersWG.Wait()
	})
	return nil
}

func (s *evdevSource) readLoop(dev *evdev.InputDevice) {
	defer s.readersWG.Done()

	for {
		event, err := dev.ReadOne()
		if err != nil {
			if s.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !s.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			if !s.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}
		if event == nil || event.Type != evdev.EV_KEY || event.Value != 1 {
			continue
		}

		name, ok := keyName(uint16(event.Code))
		if !ok {
			continue
		}
		select {
		case s.keys <- name:
		case <-s.done:
			return
		default:
			// A slow consumer drops presses rather than blocking the reader.
		}
	}
}

func (s *evdevSource) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *evdevSource) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-s.done:
		return false
	case <-timer.C:
		return true
	}
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV) ||
		strings.Contains(err.Error(), "file already closed")
}

func deviceIsVirtual(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "virtual") || strings.Contains(lower, "uinput")
}

var evdevKeyNames = map[uint16]string{
	uint16(evdev.KEY_F1):  "f1",
	uint16(evdev.KEY_F2):  "f2",
	uint16(evdev.KEY_F3):  "f3",
	uint16(evdev.KEY_F4):  "f4",
	uint16(evdev.KEY_F5):  "f5",
	uint16(evdev.KEY_F6):  "f6",
	uint16(evdev.KEY_F7):  "f7",
	uint16(evdev.KEY_F8):  "f8",
	uint16(evdev.KEY_F9):  "f9",
	uint16(evdev.KEY_F10): "f10",
	uint16(evdev.KEY_F11): "f11",
	uint16(evdev.KEY_F12): "f12",
}

func keyName(code uint16) (string, bool) {
	name, ok := evdevKeyNames[code]
	return name, ok
}
