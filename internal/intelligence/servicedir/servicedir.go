// Package servicedir is the static directory of brand support contacts and
// authorised service centers.
package servicedir

import "strings"

// Entry is one brand's support contacts.
type Entry struct {
	Brand   string   `json:"-"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Website string   `json:"website"`
	Centers []string `json:"centers"`
}

// Directory is an ordered, read-only set of entries.
type Directory struct {
	entries []Entry
}

// New builds a directory over entries in the given order.
func New(entries []Entry) *Directory {
	return &Directory{entries: append([]Entry(nil), entries...)}
}

// Default returns the built-in directory.
func Default() *Directory {
	return New(builtin)
}

// Brands lists brand names in declaration order.
func (d *Directory) Brands() []string {
	out := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e.Brand)
	}
	return out
}

// Lookup finds a brand by case-insensitive exact name.
func (d *Directory) Lookup(brand string) (Entry, bool) {
	for _, e := range d.entries {
		if strings.EqualFold(e.Brand, strings.TrimSpace(brand)) {
			return e, true
		}
	}
	return Entry{}, false
}

// Mentioned returns the first brand, in declaration order, whose lowercase
// name occurs in text. text is expected to be lowercased already.
func (d *Directory) Mentioned(text string) (Entry, bool) {
	for _, e := range d.entries {
		if strings.Contains(text, strings.ToLower(e.Brand)) {
			return e, true
		}
	}
	return Entry{}, false
}

// EmailFor returns the support address of brand, or "" when unknown.
func (d *Directory) EmailFor(brand string) string {
	if e, ok := d.Lookup(brand); ok {
		return e.Email
	}
	return ""
}

var builtin = []Entry{
	{
		Brand:   "Samsung",
		Phone:   "1800-40-7267864",
		Email:   "support@samsung.com",
		Website: "https://www.samsung.com/in/support/",
		Centers: []string{"Samsung Service Plaza, Andheri West, Mumbai", "Samsung Authorised Centre, Dadar, Mumbai", "Samsung Smart Café, Thane"},
	},
	{
		Brand:   "LG",
		Phone:   "1800-315-9999",
		Email:   "support@lg.com",
		Website: "https://www.lg.com/in/support",
		Centers: []string{"LG Service Center, Goregaon, Mumbai", "LG Authorised Service, Borivali, Mumbai", "LG Care Center, Navi Mumbai"},
	},
	{
		Brand:   "Sony",
		Phone:   "1800-103-7799",
		Email:   "support@sony.com",
		Website: "https://www.sony.co.in/support",
		Centers: []string{"Sony Center, Fort, Mumbai", "Sony Service Hub, Powai, Mumbai"},
	},
	{
		Brand:   "Apple",
		Phone:   "000-800-040-1966",
		Email:   "",
		Website: "https://support.apple.com/en-in",
		Centers: []string{"Apple BKC, Mumbai", "Apple Authorised Service, Andheri, Mumbai"},
	},
	{
		Brand:   "HP",
		Phone:   "1800-108-4747",
		Email:   "",
		Website: "https://support.hp.com/in-en",
		Centers: []string{"HP Service Center, Lower Parel, Mumbai"},
	},
	{
		Brand:   "Dell",
		Phone:   "1800-425-4026",
		Email:   "",
		Website: "https://www.dell.com/support/home/en-in",
		Centers: []string{"Dell Service Center, Andheri, Mumbai"},
	},
	{
		Brand:   "Lenovo",
		Phone:   "1800-419-7555",
		Email:   "",
		Website: "https://support.lenovo.com/in/en",
		Centers: []string{"Lenovo Exclusive Store, Dadar, Mumbai"},
	},
	{
		Brand:   "Whirlpool",
		Phone:   "1800-208-1800",
		Email:   "",
		Website: "https://www.whirlpoolindia.com/support",
		Centers: []string{"Whirlpool Service, Bandra, Mumbai"},
	},
	{
		Brand:   "Bosch",
		Phone:   "1800-266-1880",
		Email:   "",
		Website: "https://www.bosch-home.in/support",
		Centers: []string{"Bosch Home Appliance Service, Worli, Mumbai"},
	},
	{
		Brand:   "OnePlus",
		Phone:   "1800-102-8411",
		Email:   "support@oneplus.com",
		Website: "https://www.oneplus.in/support",
		Centers: []string{"OnePlus Experience Store, Phoenix Mall, Mumbai"},
	},
	{
		Brand:   "Xiaomi",
		Phone:   "1800-103-6286",
		Email:   "service.in@xiaomi.com",
		Website: "https://www.mi.com/in/support",
		Centers: []string{"Mi Service Center, Malad, Mumbai", "Xiaomi Authorised Service, Vashi"},
	},
	{
		Brand:   "Realme",
		Phone:   "1800-102-2777",
		Email:   "service@realme.com",
		Website: "https://www.realme.com/in/support",
		Centers: []string{"Realme Service Center, Ghatkopar, Mumbai"},
	},
	{
		Brand:   "Panasonic",
		Phone:   "1800-103-1333",
		Email:   "",
		Website: "https://www.panasonic.com/in/support.html",
		Centers: []string{"Panasonic Service, Kurla, Mumbai"},
	},
	{
		Brand:   "Godrej",
		Phone:   "1800-209-5511",
		Email:   "",
		Website: "https://www.godrej.com/support",
		Centers: []string{"Godrej Service Hub, Vikhroli, Mumbai"},
	},
	{
		Brand:   "Voltas",
		Phone:   "1800-599-9555",
		Email:   "",
		Website: "https://www.voltas.com/contact-us",
		Centers: []string{"Voltas Service, Thane, Mumbai"},
	},
	{
		Brand:   "Haier",
		Phone:   "1800-200-9999",
		Email:   "",
		Website: "https://www.haier.com/in/support/",
		Centers: []string{"Haier Service Center, Andheri, Mumbai"},
	},
	{
		Brand:   "Asus",
		Phone:   "1800-209-0365",
		Email:   "",
		Website: "https://www.asus.com/in/support/",
		Centers: []string{"Asus Service Center, Lamington Road, Mumbai"},
	},
	{
		Brand:   "Acer",
		Phone:   "1800-115-553",
		Email:   "",
		Website: "https://www.acer.com/ac/en/IN/content/support",
		Centers: []string{"Acer Service Center, Dadar, Mumbai"},
	},
}
