// Package imagecache serves game images from a local directory, fetching and
// persisting them from a remote origin on first use.
//
// Assets are keyed by their relative path. The remote source for a path is
// always
//
//	<base>/images/game/<path>
//
// and the local copy lives at <dir>/<path>; the directory mirrors the remote
// layout with no index file. Fetch reports remote failures as a plain miss so
// an image endpoint can answer 404. Prefetch warms the cache in bulk, Clear
// empties it, and SetBaseURL switches the origin for later fetches.
package imagecache
