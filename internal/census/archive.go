package census

import (
	"fmt"
	"strings"
)

// Level is the geographic summary level of an archive.
type Level string

const (
	State  Level = "state"
	County Level = "county"
)

// FirstYear is the earliest year published under GENZ{year}/shp.
const FirstYear = 2014

// Resolutions lists the generalisation levels published for states and counties.
var Resolutions = []string{"500k", "5m", "20m"}

// ValidResolution reports whether r is one of Resolutions.
func ValidResolution(r string) bool {
	for _, v := range Resolutions {
		if v == r {
			return true
		}
	}
	return false
}

// ArchiveName returns the file name of the archive for year, level and resolution.
func ArchiveName(year int, level Level, resolution string) string {
	return fmt.Sprintf("cb_%d_us_%s_%s.zip", year, level, resolution)
}

// ArchivePath returns the path of name below the base URL.
func ArchivePath(year int, name string) string {
	return fmt.Sprintf("/GENZ%d/shp/%s", year, name)
}

// ArchiveURL joins base and ArchivePath.
func ArchiveURL(base string, year int, name string) string {
	return strings.TrimRight(base, "/") + ArchivePath(year, name)
}
