package populate

// PageSeed is one bookmarked page in the seed catalog.
type PageSeed struct {
	Title string
	URL   string
}

// CategorySeed is one category in the seed catalog with its fixed counters.
type CategorySeed struct {
	Name  string
	Views int
	Likes int
	Pages []PageSeed
}

// DefaultCatalog returns the sample data the populate command loads.
func DefaultCatalog() []CategorySeed {
	return []CategorySeed{
		{
			Name:  "Python",
			Views: 128,
			Likes: 64,
			Pages: []PageSeed{
				{Title: "Official Python Tutorial", URL: "http://docs.python.org/3/tutorial/"},
				{Title: "How to Think Like a Computer Scientist", URL: "http://www.greenteapress.com/thinkpython/"},
				{Title: "Learn Python in 10 Minutes", URL: "http://www.korokithakis.net/tutorials/python/"},
			},
		},
		{
			Name:  "Django",
			Views: 64,
			Likes: 32,
			Pages: []PageSeed{
				{Title: "Official Django Tutorial", URL: "https://docs.djangoproject.com/en/2.1/intro/tutorial01/"},
				{Title: "Django Rocks", URL: "http://www.djangorocks.com/"},
				{Title: "How to Tango with Django", URL: "http://www.tangowithdjango.com/"},
			},
		},
		{
			Name:  "Other Frameworks",
			Views: 32,
			Likes: 16,
			Pages: []PageSeed{
				{Title: "Bottle", URL: "http://bottlepy.org/docs/dev/"},
				{Title: "Flask", URL: "http://flask.pocoo.org"},
			},
		},
	}
}
