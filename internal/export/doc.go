package export

// Package export implements the image export pipeline. An export loads the
// referenced image, rasterizes it off-screen with the active filter, encodes
// it and hands the payload to a Saver. When the image cannot be loaded or the
// encoder yields nothing, the pipeline fetches the original bytes over the
// network and saves them unfiltered. Tasks are tracked in memory and
// published to the UI through an update callback.
