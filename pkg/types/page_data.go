package types

type FlashKind string

const (
	FlashNotice FlashKind = "notice"
	FlashError  FlashKind = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

type NavbarData struct {
	Section     string
	Environment string
}

type PageDataSetter interface {
	SetNavbarData(data NavbarData)
	SetFlash(flash *Flash)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
	Flash  *Flash
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

func (d *BasePageData) SetFlash(flash *Flash) {
	d.Flash = flash
}
