// Package dispatch runs event callbacks and per-frame hooks with panic
// isolation.
//
// A misbehaving callback must never abort delivery to the callbacks queued
// after it, nor stop the frame loop. The Executor recovers any panic, records
// its value and stack in a Result and reports it to a configurable
// PanicHandler.
//
// # Usage
//
//	exec := dispatch.NewExecutor(
//	    dispatch.WithPanicHandler(func(label string, v any, stack []byte) {
//	        logger.Error().Str("callback", label).Interface("panic", v).Msg("recovered")
//	    }),
//	)
//	res := exec.Run("Player/jump", cb)
//	if res.Panicked {
//	    // delivery continues with the next callback
//	}
package dispatch
