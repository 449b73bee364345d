// Package engine hosts a render tree on a single UI thread.
//
// An [Engine] owns a [Looper], the message queue that serves as the UI
// thread, and registers it as the platform dispatcher so that timers started
// by render objects run there. Hosts drive the looper either with
// [Looper.Run] on a dedicated goroutine or by calling [Looper.RunPending]
// from their own loop, and replay each recorded frame onto their canvas.
package engine
