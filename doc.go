// Package cardbrand provides:
//
// - Normalization of card-like numbers (space and hyphen separators removed)
// - A strict Luhn checksum (Luhn, CheckDigit)
// - Issuer classification through an ordered prefix table (Classify, Check)
// - A stable error model via Issues (code, message, offset)
//
// Design policy:
// - Keep the pure library in the root package; rule files live in rulefile/,
//   localized messages in i18n/, the CLI under cmd/cardbrand.
// - Every rejection collapses to the Unknown issuer. Check additionally
//   returns Issues naming the reason.
// - Nothing here performs I/O or keeps state between calls.
//
// Typical usage:
//
//  issuer := cardbrand.Classify("4539 1488 0343 6467") // VISA
//
//  res, err := cardbrand.Check(input)
//  if cardbrand.HasCode(err, cardbrand.CodeChecksumFailed) { ... }
//
//  c := cardbrand.NewClassifier(customRules)
//  issuer = c.Classify(input)
package cardbrand
