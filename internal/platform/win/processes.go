//go:build windows

package win

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var errNoImageName = errors.New("process has no image name")

type processLister struct{}

var _ platform.ProcessLister = processLister{}

// Processes walks a Toolhelp32 snapshot of the process table.
func (processLister) Processes() ([]platform.Process, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snap, &entry); err != nil {
		return nil, fmt.Errorf("first process: %w", err)
	}

	var procs []platform.Process
	for {
		p := platform.Process{
			PID:       int(entry.ProcessID),
			ImageName: windows.UTF16ToString(entry.ExeFile[:]),
		}
		if p.ImageName == "" {
			p.Err = errNoImageName
		}
		procs = append(procs, p)

		err := windows.Process32Next(snap, &entry)
		if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("next process: %w", err)
		}
	}
	return procs, nil
}
