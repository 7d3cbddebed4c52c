/*
Package ports defines the driven ports (interfaces) for the Swoop engine.

These interfaces decouple the core logic from external implementations,
allowing the controller to drive any document backend, history stack, page
cache, or fetch transport. The ambient browser globals (document,
window.history, fetch) become injected capabilities here, which is what
makes the core testable without a browser.

# Key Interfaces

  - Document: Query/mutate capability over the current page (classes,
    content blocks, scroll, transition completion).
  - History: The navigation entry stack with controller-marked entries.
  - PageCache: Persists fetched page records keyed by resolved URL.
  - Fetcher: Retrieves and parses a destination document.
*/
package ports
