package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"
)

// billScanPrompt is the shared prompt used by all LLM providers for reading
// expense receipts.
const billScanPrompt = `You are analyzing a receipt or invoice for an employee expense report. Carefully read all text in the image and extract the following information:

1. **Expense type**: Classify the expense as exactly one of: "Transports", "Restaurants et bars", "Hôtel et logement", "Services en ligne", "IT et électronique", "Equipement et matériel", "Fournitures de bureau".

2. **Name**: A short label for the expense, usually the merchant or service name. Examples: "Vol Paris Londres", "Hôtel du centre", "Restaurant Le Relais".

3. **Date**: The transaction or invoice date, converted to ISO 8601 format (YYYY-MM-DD).

4. **Amount**: The final total or amount due. Extract only the numeric value (e.g., 42.75 for 42,75 €).

5. **VAT**: The VAT amount if shown on the receipt, as a string (e.g., "70"). Use "" if not shown.

Return ONLY valid JSON in this exact format:
{
  "type": "Transports",
  "name": "Merchant Name",
  "date": "YYYY-MM-DD",
  "amount": 0.00,
  "vat": ""
}

Important:
- The type must be one of the listed categories
- The date must be in YYYY-MM-DD format
- The amount must be a number (not a string)
- If you cannot find a field, use null for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// imageToPNG converts a JPEG or PNG receipt image to PNG. Attachments are
// validated upstream to jpg/jpeg/png, so no other format reaches this point.
func imageToPNG(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// prepareImageData normalizes the receipt image to PNG so every provider
// receives the same format. Returns the final image data and whether a
// conversion occurred.
func prepareImageData(imageData []byte, contentType string) ([]byte, bool, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "image/png" {
		return imageData, false, nil
	}

	pngData, err := imageToPNG(imageData)
	if err != nil {
		return nil, false, fmt.Errorf("converting image to PNG: %w", err)
	}
	return pngData, true, nil
}
