// Package tui is the core of a small terminal UI framework: a diffing cell
// canvas, an input decoder for keyboard, mouse and paste sequences, an event
// dispatcher that owns focus and pointer capture, a component registry with
// per-tick update and draw hooks, and a fixed-rate scheduler that ties them
// together.
//
// A program builds a Root on a Canvas, creates components under it and
// ranges over Scheduler.Run:
//
//	canvas := tui.NewCanvas(tty, 80, 24)
//	root := tui.NewRoot(canvas)
//	sched, err := tui.NewScheduler(root, tui.WithTerminal(tty))
//	...
//	for tick, err := range sched.Run(ctx) {
//		if err != nil {
//			return err
//		}
//		_ = tick
//	}
//
// Everything except the scheduler's input reader runs on the goroutine that
// ranges over Run, so components need no locking.
package tui
