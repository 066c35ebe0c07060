// Package scraper provides page rendering and card extraction for the 4PADEL
// tournament listing.
//
// The listing is rendered client-side, so the default Page adapter drives a
// headless Chrome through chromedp; a plain HTTP adapter covers pre-rendered
// or saved pages. Both adapters hand an HTML snapshot to goquery for text
// extraction. Each listing card is reduced to CardFragments (level zone,
// club zone, date block) and turned into a tournament by Extract.
package scraper
