package responsetimes

// Collector captures every response time of a log file, grouped by URL. All
// samples are kept as medians need the full set; storage is O(n) in the
// number of requests.
//
// A key invariant is that Len and Total always agree with the samples held
// per URL: Len is the number of samples across all URLs and Total their sum.
type Collector struct {
	// samples maps a URL to its response times in seconds, in the order they
	// were added.
	samples map[string][]float64
	// urls holds each URL once, in the order it was first added, so that
	// callers iterating the collector get a deterministic order.
	urls  []string
	count int
	total float64
}

func NewCollector() *Collector {
	return &Collector{
		samples: map[string][]float64{},
	}
}

// Add records a response time in seconds for url.
func (c *Collector) Add(url string, seconds float64) {
	times, exists := c.samples[url]
	if !exists {
		c.urls = append(c.urls, url)
	}
	c.samples[url] = append(times, seconds)
	c.count++
	c.total += seconds
}

// URLs gets every URL collected in first-seen order.
func (c *Collector) URLs() []string {
	urls := make([]string, len(c.urls))
	copy(urls, c.urls)
	return urls
}

// All gets a copy of the response times collected for url.
func (c *Collector) All(url string) []float64 {
	times := make([]float64, len(c.samples[url]))
	copy(times, c.samples[url])
	return times
}

// Len gets the number of response times collected across all URLs.
func (c *Collector) Len() int {
	return c.count
}

// Total gets the sum of all response times collected, in seconds.
func (c *Collector) Total() float64 {
	return c.total
}
