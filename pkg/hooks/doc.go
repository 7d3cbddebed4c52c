/*
Package hooks implements the typed, ordered event bus of the Swoop engine.

Every lifecycle boundary of a visit fires a hook. Handlers can observe a
hook, run ahead of its built-in behavior, or replace that behavior entirely:

	reg := hooks.NewRegistry()
	off := reg.On(domain.HookPageView, logView)
	reg.On(domain.HookContentReplace, fancySwap, hooks.Options{Replace: true})
	defer off()

Ordering inside one trigger is deterministic: handlers registered with
Before run first, then the main handler (the outermost of the replace
chain, or the built-in default), then the remaining handlers. Each group is
sorted by (priority, registration id) ascending, so lower priorities run
earlier and ties preserve registration order.

Multiple Replace registrations nest. The newest replacement runs first and
receives the next-older one as its event's default, down to the true
built-in default, so each layer chooses whether to delegate or fully
override.

Handlers that finish asynchronously return a *Future. Trigger waits for
futures to settle; TriggerSync does not, logging a warning instead. That
asymmetry is deliberate and documented: a pending future returned from a
synchronous trigger is captured but never awaited.

The hook name set is closed (see package domain). Triggering or registering
an unknown name is a logged no-op so a misconfigured extension can never
crash navigation.
*/
package hooks
