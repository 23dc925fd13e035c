// Package win implements the platform interfaces on Windows.
//
// Window titles, processes, mouse and keyboard go through user32 and kernel32
// directly. UI Automation queries run in a short-lived PowerShell process
// using System.Windows.Automation and report back as compact JSON, so the
// backend needs no cgo and no COM bindings. Only the files that touch the OS
// carry the windows build tag; parsing and script generation build
// everywhere.
package win
