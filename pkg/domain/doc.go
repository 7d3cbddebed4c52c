/*
Package domain contains the core domain models for the Swoop engine.

It defines the fundamental entities of the transition lifecycle: fetched
page records, in-flight visits, the closed set of lifecycle hook names with
their argument shapes, and the CSS class protocol that communicates
transition phases to stylesheets. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - PageRecord: Represents one fetched document (title, content blocks, headers).
  - Visit: Captures one logical navigation attempt from trigger to completion.
  - HookName: A member of the pre-declared set of lifecycle extension points.
  - Notification: The externally observable record of a hook firing.
*/
package domain
