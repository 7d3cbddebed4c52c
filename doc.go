/*
Package swoop is a page transition engine: it turns full page loads into
fetch-and-swap visits with animated leave/enter phases, a content cache,
history integration and a hook system for extension.

It implements a "supersede, don't cancel" navigation model: starting a
new visit while another is in flight never interrupts the old one, but
every side-effecting stage of the old visit re-checks that it still owns
the page and backs off if it does not. The engine core is headless; the
document, history and network are injected capabilities, so the same
pipeline runs against a real site, a test fixture or an in-memory DOM.

# Concept

A visit is one navigation from trigger to settled page: leave animation,
content load (cache or network), render (history + DOM swap), enter
animation. Every boundary fires a named hook. Handlers can observe a
phase, reorder around its default behavior, or replace the behavior
entirely; plugins bundle handler sets with a mount/unmount lifecycle.

# Usage

Initialize the engine with the site's base URL. Capabilities not
injected fall back to headless in-memory defaults.

	package main

	import (
		"context"
		"log"

		"github.com/veltran/swoop"
	)

	func main() {
		eng, err := swoop.New("https://example.com/")
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()

		// Observe visits.
		unsub := eng.Hooks().Notify(func(n swoop.Notification) {
			log.Println("hook:", n.Hook)
		})
		defer unsub()

		if err := eng.Navigate(ctx, "/about"); err != nil {
			log.Fatal(err)
		}
		log.Println("now on:", eng.History().Current())
	}
*/
package swoop
