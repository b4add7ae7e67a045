package buildinfo

// Version, Commit and Date are set at build time via -ldflags, e.g.
//
//	-ldflags "-X busmon/internal/buildinfo.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier that fits one LCD row.
func Short() string {
	s := "dev"
	switch {
	case Version != "" && Version != "dev":
		s = Version
	case Commit != "" && Commit != "unknown":
		s = Commit
	}
	if len(s) > 16 {
		s = s[:16]
	}
	return s
}

// String returns the full build identifier for logs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
