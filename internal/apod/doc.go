// Package apod provides an HTTP client for NASA's Astronomy Picture of the Day
// API.
//
// # Overview
//
// The package is split into two files:
//
//   - client.go: HTTP client, status errors and image downloads
//   - entry.go: the flattened response type and calendar-day helpers
//
// # Client Usage
//
//	client, err := apod.NewClient("", os.Getenv("APODBAR_API_KEY"), time.Minute)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	entry, err := client.FetchDay(ctx, time.Now())
//	switch {
//	case apod.IsNotFound(err):
//		// no picture for that day yet
//	case err != nil:
//		log.Printf("fetch failed: %v", err)
//	default:
//		fmt.Println(entry.Title(), entry[apod.FieldURL])
//	}
//
// # Responses
//
// Responses are decoded into Entry, a flat map of the string-valued JSON
// fields (url, hdurl, title, date, explanation, media_type, thumbnail_url,
// copyright). Non-string values are dropped. Video entries are requested with
// thumbs=true so a still thumbnail is available.
//
// # Error Handling
//
// Any status >= 300 becomes a *StatusError. IsNotFound reports true for 400
// and 404, which the API returns for dates outside the archive and for days
// without a picture. The API key is redacted from error text.
package apod
