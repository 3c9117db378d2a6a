// Package csvtojs is the Composition Root for the csvtojs converter.
//
// It connects the core conversion service (Domain Layer) with the CSV reader and
// the JavaScript emitter (Adapter Layer).
//
// csvtojs turns a CSV of species records (key, common name, scientific name)
// into a script that assigns the rows to a global variable:
//
//	window.__speciesRecords = [
//	  {
//	    "key": "Oak",
//	    "common": "Oak Tree",
//	    "scientific": "Quercus"
//	  }
//	];
//
// The file can be loaded with a plain <script src> tag, which keeps working
// when the page is opened from disk without a server.
//
// Features:
//
//   - **Header Inference**: Columns titled Key / Common Name / Scientific Name are
//     found in any order and case, with substring matching as a fallback.
//   - **Positional Fallback**: Files without usable titles map columns 0, 1, 2.
//   - **Encodings**: Strict UTF-8 by default, legacy code pages on request.
//
// Usage:
//
//	svc := csvtojs.New(
//		csvtojs.WithVarName("window.SPECIES"),
//		csvtojs.WithCompact(true),
//	)
//	res, err := svc.Convert(ctx, "species.csv", "species-data.js")
package csvtojs
