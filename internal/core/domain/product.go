package domain

import (
	"strconv"
	"time"
)

// DefaultCurrency is applied to new product drafts.
const DefaultCurrency = "PKR"

// ProductImage is a persisted image. Only persisted images can be deleted or
// promoted, because only they have a server identity.
type ProductImage struct {
	ID        int64     `json:"id"`
	Image     string    `json:"image,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// URL prefers the resolved image_url over the raw storage path.
func (i ProductImage) URL() string {
	if i.ImageURL != "" {
		return i.ImageURL
	}
	return i.Image
}

// Product is a catalog entry as returned by the backend. Colors and
// FrameColors are two spellings of the same attribute.
type Product struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Price        Numeric        `json:"price"`
	Currency     string         `json:"currency,omitempty"`
	Stock        Numeric        `json:"stock"`
	Category     string         `json:"category,omitempty"`
	Brand        string         `json:"brand,omitempty"`
	Colors       MultiValue     `json:"colors,omitempty"`
	FrameColors  MultiValue     `json:"frame_colors,omitempty"`
	Sizes        MultiValue     `json:"sizes,omitempty"`
	LensOptions  MultiValue     `json:"lens_options,omitempty"`
	IsBestseller bool           `json:"is_bestseller"`
	IsNew        bool           `json:"is_new"`
	IsAvailable  *bool          `json:"is_available,omitempty"`
	Images       []ProductImage `json:"images"`
	PrimaryImage *string        `json:"primary_image"`
	CreatedAt    time.Time      `json:"created_at,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at,omitempty"`
}

// Identity is the product's id as used in backend paths.
func (p Product) Identity() string {
	return strconv.FormatInt(p.ID, 10)
}

// Attachment is a file staged for upload with the next submit. ID is a
// client-side handle so staged files can be removed individually.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Data        []byte `json:"-"`
}

// ProductDraft is the products form. ExistingImages and Attachments are kept
// apart: the former are persisted, the latter are staged.
type ProductDraft struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          string         `json:"price"`
	Currency       string         `json:"currency"`
	Stock          string         `json:"stock"`
	Category       string         `json:"category"`
	Brand          string         `json:"brand"`
	FrameColors    []string       `json:"frame_colors"`
	Sizes          []string       `json:"sizes"`
	LensOptions    []string       `json:"lens_options"`
	IsBestseller   bool           `json:"is_bestseller"`
	IsNew          bool           `json:"is_new"`
	IsAvailable    bool           `json:"is_available"`
	Attachments    []Attachment   `json:"attachments"`
	ExistingImages []ProductImage `json:"existing_images"`
}

// Option catalogs offered by the product form pickers.
var (
	FrameColorOptions = []string{
		"Black", "Brown", "Tortoise", "Gray", "Silver", "Gold", "Rose Gold",
		"Blue", "Red", "Green", "Purple", "Pink", "White", "Navy", "Beige",
		"Obsidian", "Matte Black", "Gunmetal", "Crystal", "Transparent",
	}
	SizeOptions = []string{
		"Small", "Medium", "Large", "Extra Large",
		"48mm", "50mm", "52mm", "54mm", "56mm", "58mm",
		"Narrow", "Wide", "Standard",
	}
	LensOptionChoices = []string{
		"Frame Only", "Customize Lenses", "Prescription Lenses",
		"Blue Light Blocking", "Photochromic", "Polarized", "Gradient",
		"Mirror", "Anti-Reflective Coating",
	}
	CategoryOptions = []string{
		"Men", "Women", "Kids", "Unisex",
		"Sunglasses", "Reading Glasses", "Computer Glasses",
		"Sports", "Fashion", "Prescription", "Safety",
	}
)
