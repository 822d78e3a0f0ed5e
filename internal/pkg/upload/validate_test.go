package upload

import "testing"

func TestValidateImageBySniff(t *testing.T) {
	pngHead := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	if _, err := ValidateImageBySniff("cover.png", pngHead); err != nil {
		t.Fatalf("valid png rejected: %v", err)
	}
	if _, err := ValidateImageBySniff("cover.svg", pngHead); err == nil {
		t.Fatal("svg extension accepted")
	}
	if _, err := ValidateImageBySniff("cover.png", []byte("<html><script>")); err == nil {
		t.Fatal("html content accepted")
	}
}

func TestValidatePDFBySniff(t *testing.T) {
	if err := ValidatePDFBySniff("guide.pdf", []byte("%PDF-1.7 rest")); err != nil {
		t.Fatalf("valid pdf rejected: %v", err)
	}
	if err := ValidatePDFBySniff("guide.pdf", []byte("MZ....")); err == nil {
		t.Fatal("non-pdf content accepted")
	}
	if err := ValidatePDFBySniff("guide.exe", []byte("%PDF-1.7")); err == nil {
		t.Fatal("non-pdf extension accepted")
	}
}
