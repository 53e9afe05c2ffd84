// Package framebuffer writes packed frames to a raw pixel device such as
// /dev/fb1. The device is treated as a seekable byte sink: every frame is
// written at offset zero with no header or handshake.
package framebuffer

import (
	"errors"
	"fmt"
	"os"
)

const (
	errOpenDevice  = "open framebuffer %s: %w"
	errWriteFrame  = "write frame to %s: %w"
	errShortWrite  = "write frame to %s: wrote %d of %d bytes"
	errFrameSize   = "frame is %d bytes, device expects %d"
	errCloseDevice = "close framebuffer %s: %w"
)

var (
	ErrFrameSize = errors.New("unexpected frame size")
	ErrClosed    = errors.New("framebuffer closed")
)

// Device is an open framebuffer. It is not safe for concurrent use.
type Device struct {
	path      string
	file      *os.File
	frameSize int
}

// Open opens path write-only. frameSize is the exact number of bytes every
// frame must have; zero disables the check.
func Open(path string, frameSize int) (*Device, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf(errOpenDevice, path, err)
	}
	return &Device{path: path, file: f, frameSize: frameSize}, nil
}

// Path returns the device path.
func (d *Device) Path() string { return d.path }

// WriteFrame writes buf at offset zero.
func (d *Device) WriteFrame(buf []byte) error {
	if d.file == nil {
		return ErrClosed
	}
	if d.frameSize > 0 && len(buf) != d.frameSize {
		return fmt.Errorf("%w: "+errFrameSize, ErrFrameSize, len(buf), d.frameSize)
	}
	n, err := d.file.WriteAt(buf, 0)
	if err != nil {
		return fmt.Errorf(errWriteFrame, d.path, err)
	}
	if n != len(buf) {
		return fmt.Errorf(errShortWrite, d.path, n, len(buf))
	}
	return nil
}

// Close releases the device. Further writes fail with ErrClosed.
func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	if err != nil {
		return fmt.Errorf(errCloseDevice, d.path, err)
	}
	return nil
}
