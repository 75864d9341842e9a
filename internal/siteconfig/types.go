package siteconfig

// Schema type discriminator values accepted in seo.schema.type.
const (
	SchemaLocalBusiness   = "LocalBusiness"
	SchemaServiceBusiness = "ServiceBusiness"
)

// SchemaTypes lists the legal values of seo.schema.type.
var SchemaTypes = []string{SchemaLocalBusiness, SchemaServiceBusiness}

// SiteConfig is the complete configuration of one site instance. No field is
// optional: absent values are filled with the defaults from Defaults.
type SiteConfig struct {
	Business     BusinessInfo  `json:"business"`
	Contact      ContactInfo   `json:"contact"`
	Services     []Service     `json:"services"`
	Testimonials []Testimonial `json:"testimonials"`
	Social       []SocialLink  `json:"social"`
	SEO          SEOConfig     `json:"seo"`
	CTA          CTABlocks     `json:"cta"`
	Trust        TrustSignals  `json:"trust"`
	Images       Images        `json:"images"`
}

type BusinessInfo struct {
	Name           string      `json:"name"`
	Slogan         string      `json:"slogan"`
	Description    string      `json:"description"`
	Industry       string      `json:"industry"`
	Logo           string      `json:"logo"`
	Founded        string      `json:"founded"`
	Owner          string      `json:"owner"`
	Certifications []string    `json:"certifications"`
	Licenses       []string    `json:"licenses"`
	Insurance      []string    `json:"insurance"`
	ServiceArea    []string    `json:"serviceArea"`
	City           string      `json:"city"`
	State          string      `json:"state"`
	Zip            string      `json:"zip"`
	BrandColors    BrandColors `json:"brandColors"`
	Hours          []string    `json:"hours"`
}

type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type ContactInfo struct {
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Address        string   `json:"address"`
	Hours          string   `json:"hours"`
	EmergencyPhone string   `json:"emergencyPhone"`
	EmergencyHours string   `json:"emergencyHours"`
	WhatsApp       string   `json:"whatsapp"`
	ServiceArea    []string `json:"serviceArea"`
}

type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery"`
}

type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
	Image    string `json:"image"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

type SocialLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Icon string `json:"icon"`
}

type SEOConfig struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Keywords      []string  `json:"keywords"`
	OGImage       string    `json:"ogImage"`
	TwitterHandle string    `json:"twitterHandle"`
	Schema        SEOSchema `json:"schema"`
}

// SEOSchema feeds the structured-data markup. Type is one of SchemaTypes.
type SEOSchema struct {
	Type            string   `json:"type"`
	PriceRange      string   `json:"priceRange"`
	OpeningHours    []string `json:"openingHours"`
	PaymentAccepted []string `json:"paymentAccepted"`
	AreaServed      []string `json:"areaServed"`
}

type CTASection struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	Emergency       bool   `json:"emergency"`
	BackgroundColor string `json:"backgroundColor"`
}

type CTABlocks struct {
	Primary   CTASection `json:"primary"`
	Emergency CTASection `json:"emergency"`
	Quote     CTASection `json:"quote"`
}

type TrustSignals struct {
	Certifications []string `json:"certifications"`
	Awards         []string `json:"awards"`
	Memberships    []string `json:"memberships"`
	Guarantees     []string `json:"guarantees"`
}

type Images struct {
	Hero     string   `json:"hero"`
	About    string   `json:"about"`
	Services []string `json:"services"`
	Team     []string `json:"team"`
	Gallery  []string `json:"gallery"`
}
