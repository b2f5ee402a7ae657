// Package source supplies frames to the pipeline.
//
// Replay reads still images from a directory and hands them out at a fixed
// rate, standing in for a camera on the bench. Files are played in name
// order; decoded images are cached so looping over the same set costs no
// disk reads after the first pass.
package source
