package pets

import (
	"context"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"pettrackr/internal/domain/owners"
)

const (
	QRCodeSize = 300
	lostPetURL = "https://www.americanhumane.org/public-education/what-to-if-youve-lost-your-pet/"
)

// QRCode genera el PNG para el collar: datos de la mascota y contacto del owner.
func (s *Service) QRCode(ctx context.Context, ownerID, petID string) ([]byte, error) {
	p, err := s.GetOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	if s.owners == nil {
		return nil, ErrOwnerNotFound
	}
	o, err := s.owners.GetByID(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(QRContent(p, o), qrcode.Medium, QRCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}

func QRContent(p Pet, o owners.Owner) string {
	var b strings.Builder
	b.WriteString("LOST PET - PLEASE HELP!\n")
	fmt.Fprintf(&b, "Pet: %s\n", p.Name)
	fmt.Fprintf(&b, "Type: %s\n", p.Species)
	fmt.Fprintf(&b, "Breed: %s\n\n", p.Breed)
	b.WriteString("CONTACT OWNER:\n")
	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Phone: %s\n\n", o.Phone)
	b.WriteString("FOUND THIS PET?\n")
	b.WriteString("Visit this guide:\n")
	b.WriteString(lostPetURL + "\n")
	return b.String()
}
