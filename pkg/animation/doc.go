// Package animation provides the time source and the periodic timer that
// drive redraws.
//
// [Now] is used everywhere a timestamp is needed so that tests can replace
// the clock with [SetClock]. [PeriodicTimer] re-arms itself through the
// platform dispatcher and is stopped by its owner when it leaves the screen:
//
//	timer := animation.NewPeriodicTimer(time.Second, func(time.Time) {
//	    box.MarkNeedsPaint()
//	})
//	timer.Start() // in DidAttach
//	timer.Stop()  // in WillDetach
package animation
