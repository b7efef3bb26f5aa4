package store

// Stats collects the diagnostics counters reported after a build.
type Stats struct {
	Rows          int
	DupRows       int
	Groups        int
	Pages         int
	HTTPErrors    int
	MedianOK      int
	MedianMissing int
	MedianErrors  int
	HTTP401       int
	HTTP403       int
	HTTP404       int
	HTTP429       int
	HTTPOther     int
	ImagesCopied  int
}

// CountStatus buckets an HTTP failure status into its counter.
func (s *Stats) CountStatus(status int) {
	switch status {
	case 401:
		s.HTTP401++
	case 403:
		s.HTTP403++
	case 404:
		s.HTTP404++
	case 429:
		s.HTTP429++
	default:
		if status >= 400 {
			s.HTTPOther++
		}
	}
}
