// Package fanout provides a typed observer list: one published value is
// delivered synchronously to every registered callback, and each callback
// is isolated so a faulty subscriber cannot break delivery to the others.
//
// It exists so the transport layer and the notification store do not need
// to know who consumes their events. Subscription returns a disposer
// closure, which keeps teardown explicit and leak-free:
//
//	reg := fanout.New[bool]()
//	unsubscribe := reg.Subscribe(func(connected bool) {
//	    // react to connection changes
//	})
//	defer unsubscribe()
//
//	reg.Publish(true)
package fanout
