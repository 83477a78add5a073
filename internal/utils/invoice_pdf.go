package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR génère le QR de suivi de commande en base64,
// prêt à mettre dans <img src="...">
func GenerateOrderQR(orderID string) (string, error) {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	trackURL := fmt.Sprintf("%s/orders/%s", base, orderID)

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF charge la page facture du front et l'imprime en PDF.
// Le QR de suivi est passé en query param, comme l'id de commande.
func GenerateInvoicePDF(orderID string) ([]byte, error) {
	qrBase64, err := GenerateOrderQR(orderID)
	if err != nil {
		return nil, fmt.Errorf("erreur génération QR: %v", err)
	}

	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)
	fullURL := fmt.Sprintf("%s?%s", getInvoiceBaseURL(), q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// getInvoiceBaseURL récupère l'URL de la page facture du front
func getInvoiceBaseURL() string {
	u := os.Getenv("FRONTEND_INVOICE_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000/invoice"
	}
	return u
}
