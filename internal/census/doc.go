// Package census downloads cartographic boundary archives published by the US
// Census Bureau.
//
// Archives live at
//
//	{base}/GENZ{year}/shp/cb_{year}_us_{level}_{resolution}.zip
//
// The client streams each archive into a file through a renameio pending file,
// fingerprinting it with BLAKE2b-256 on the way. If the caller pinned a digest
// for the archive name, a mismatch aborts the download before the file
// appears. Requests are paced by a token bucket and carry the caller's context.
// Non-2xx statuses are returned as errors with the method, URL and status.
package census
