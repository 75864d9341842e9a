package siteconfig

// Documented defaults applied beneath every profile.
const (
	DefaultIndustry       = "plumbing"
	DefaultLogo           = "/images/logo.svg"
	DefaultPrimaryColor   = "#0D6EFD"
	DefaultSecondaryColor = "#6C757D"
	DefaultAccentColor    = "#FFC107"
	DefaultContactHours   = "Monday - Friday: 8:00 AM - 5:00 PM"
	DefaultOpeningHours   = "Mo-Fr 08:00-17:00"
	DefaultSchemaType     = SchemaLocalBusiness
)

// Defaults returns the bottom layer of every composition. Every slice is
// non-nil so that it serializes as [] rather than null.
func Defaults() SiteConfig {
	return SiteConfig{
		Business: BusinessInfo{
			Industry:       DefaultIndustry,
			Logo:           DefaultLogo,
			Certifications: []string{},
			Licenses:       []string{},
			Insurance:      []string{},
			ServiceArea:    []string{},
			BrandColors: BrandColors{
				Primary:   DefaultPrimaryColor,
				Secondary: DefaultSecondaryColor,
				Accent:    DefaultAccentColor,
			},
			Hours: []string{DefaultOpeningHours},
		},
		Contact: ContactInfo{
			Hours:       DefaultContactHours,
			ServiceArea: []string{},
		},
		Services:     []Service{},
		Testimonials: []Testimonial{},
		Social:       []SocialLink{},
		SEO: SEOConfig{
			Keywords: []string{},
			Schema: SEOSchema{
				Type:            DefaultSchemaType,
				OpeningHours:    []string{},
				PaymentAccepted: []string{},
				AreaServed:      []string{},
			},
		},
		Trust: TrustSignals{
			Certifications: []string{},
			Awards:         []string{},
			Memberships:    []string{},
			Guarantees:     []string{},
		},
		Images: Images{
			Services: []string{},
			Team:     []string{},
			Gallery:  []string{},
		},
	}
}

// IsSchemaType reports whether s is a legal seo.schema.type value.
func IsSchemaType(s string) bool {
	for _, t := range SchemaTypes {
		if s == t {
			return true
		}
	}
	return false
}

// fillSlices replaces nil slices inside array items, which defaults cannot
// reach because item shapes come from profiles.
func (c *SiteConfig) fillSlices() {
	for i := range c.Services {
		if c.Services[i].Features == nil {
			c.Services[i].Features = []string{}
		}
		if c.Services[i].Gallery == nil {
			c.Services[i].Gallery = []string{}
		}
	}
}
