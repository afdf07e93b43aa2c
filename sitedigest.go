// Package sitedigest provides a batch pipeline that turns a website's
// sitemap into an SEO content report. It discovers blog post URLs from a
// sitemap, extracts each post's title and body text, asks a text-generation
// model for an SEO-oriented summary, and writes the results to a
// spreadsheet.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, gemini/, excelize/).
package sitedigest
