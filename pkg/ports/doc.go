/*
Package ports defines the driven ports (interfaces) for the reel engine.

These interfaces decouple the frame executor from the collaborators that persist,
display and assemble rendered frames, so the same engine can write to disk, keep
frames in memory for tests, or publish them to Redis.

# Key Interfaces

  - ImageStore: persists still images and raw artifacts by name.
  - Viewer: shows a frame to the user.
  - Encoder: combines the per-frame artifacts into one animation.
*/
package ports
