package purchase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

const (
	Seller        = "Autos Cuernavaca S.A. de C.V."
	defaultFolio  = "000000"
	defaultBuyer  = "Customer"
	receiptNote   = "Thank you for your purchase. Visit one of our branches so an agent can process your purchase."
	receiptFooter = "S E G A"
)

// Sharer hands a generated document to the outside world and returns where
// it can be found.
type Sharer interface {
	Share(ctx context.Context, name string, content []byte) (string, error)
}

type ReceiptLine struct {
	Name  string
	Price string
}

// Receipt is the printable summary of a completed purchase.
type Receipt struct {
	IssuedAt     time.Time
	Folio        string
	Seller       string
	Buyer        string
	Brand        string
	Model        string
	Year         int
	Plate        string
	Services     []ReceiptLine
	VehiclePrice int64
	Total        int64
	Note         string
	Footer       string
}

// NewReceipt builds the receipt of r as issued at now.
func NewReceipt(r Result, now time.Time) Receipt {
	v := r.Order.Vehicle
	rc := Receipt{
		IssuedAt:     now,
		Folio:        r.Sale.Folio,
		Seller:       Seller,
		Buyer:        r.Order.CustomerName,
		Brand:        v.Brand.Name,
		Model:        v.Model,
		Year:         v.Year,
		Plate:        v.Plate,
		VehiclePrice: v.Price,
		Total:        r.Total,
		Note:         receiptNote,
		Footer:       receiptFooter,
	}
	if rc.Folio == "" && r.Sale.ID > 0 {
		rc.Folio = fmt.Sprintf("%06d", r.Sale.ID)
	}
	if rc.Folio == "" {
		rc.Folio = defaultFolio
	}
	if rc.Buyer == "" {
		rc.Buyer = defaultBuyer
	}
	for _, s := range r.Order.Services {
		rc.Services = append(rc.Services, ReceiptLine{Name: s.Name, Price: s.Price})
	}
	return rc
}

// FileName is the suggested name of the rendered receipt.
func (rc Receipt) FileName() string {
	return fmt.Sprintf("receipt-%s-%s.html", rc.Folio, rc.IssuedAt.Format("20060102-150405"))
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"amount": models.FormatAmount,
	"date":   func(t time.Time) string { return t.Format("02/01/2006") },
}).Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Receipt {{.Folio}}</title></head>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2 style="text-align:center;">Vehicle Sale Invoice</h2>
    <p><strong>Issue date:</strong> {{date .IssuedAt}}</p>
    <p><strong>Purchase folio:</strong> {{.Folio}}</p>
    <p><strong>Seller:</strong> {{.Seller}}</p>
    <p><strong>Buyer:</strong> {{.Buyer}}</p>
    <br>
    <p><strong>Brand:</strong> {{.Brand}}</p>
    <p><strong>Model:</strong> {{.Model}}{{if .Year}} {{.Year}}{{end}}</p>
    <p><strong>Plate:</strong> {{.Plate}}</p>
    <br>
    <table border="1" cellpadding="6" cellspacing="0" width="100%">
      <thead>
        <tr><th align="left">Service / product</th><th align="right">Price</th></tr>
      </thead>
      <tbody>
{{- range .Services}}
        <tr><td>{{.Name}}</td><td align="right">{{.Price}}</td></tr>
{{- end}}
        <tr><td>Vehicle</td><td align="right">{{amount .VehiclePrice}}</td></tr>
      </tbody>
    </table>
    <h3 style="text-align: right;">Total: {{amount .Total}}</h3>
    <p style="color: red; font-size: 12px; text-align:center;">{{.Note}}</p>
    <div style="text-align: center; margin-top: 60px;"><p><strong>{{.Footer}}</strong></p></div>
  </body>
</html>
`))

// HTML renders the receipt. Every value is escaped.
func (rc Receipt) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, rc); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Receipt returns the receipt of the completed purchase. It does not change
// the sequencer state.
func (s *Sequencer) Receipt(now time.Time) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Completed || s.result == nil {
		return Receipt{}, s.stateErr("issue a receipt")
	}
	return NewReceipt(*s.result, now), nil
}

// Share renders the receipt and passes it to sharer.
func (s *Sequencer) Share(ctx context.Context, sharer Sharer, now time.Time) (string, error) {
	rc, err := s.Receipt(now)
	if err != nil {
		return "", err
	}
	html, err := rc.HTML()
	if err != nil {
		return "", err
	}
	return sharer.Share(ctx, rc.FileName(), html)
}
