package models

// CarouselQuote belongs to the display set named by Carousel.
type CarouselQuote struct {
	ID       int64
	Carousel string
	Main     string
	Quote    string
	Author   string
}

type NewCarouselQuote struct {
	Carousel string
	Main     string
	Quote    string
	Author   string
}

type CarouselQuotePatch struct {
	Carousel *string
	Main     *string
	Quote    *string
	Author   *string
}

func (p CarouselQuotePatch) IsEmpty() bool {
	return p.Carousel == nil && p.Main == nil && p.Quote == nil && p.Author == nil
}
