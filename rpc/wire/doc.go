// Package wire implements the byte-exact codec for the daemon protocol,
// version 1: the ASCII request line, the fixed-size status header, the
// statistics block and the variable-length hit records.
//
// The layout is an external contract reverse-documented against the
// daemon's serialization, not a design choice of this package. All multi-
// byte integers and floating point values are big-endian (network order);
// strings inside records are NUL-terminated and gated by presence bitmaps.
// Decoding never reinterprets buffers as native structs: every field goes
// through an explicit cursor read with its own short-buffer check.
//
// Record layouts (v1):
//
//	status header (12 bytes)
//	  u32 status code, u64 payload/message length
//
//	statistics block (114-byte base + offset table)
//	  f64 elapsed, user, sys
//	  f64 Z, domZ
//	  u8  zSetBy, u8 domZSetBy
//	  u64 nmodels, nseqs, nPastMSV, nPastBias, nPastVit, nPastFwd,
//	      nhits, nreported, nincluded
//	  offset table: nhits x u64, or one sentinel u64 of all ones when the
//	  server did not record per-hit offsets
//
//	hit record (length-prefixed, self-inclusive)
//	  u32 total length, u64 seqidx, u64 subseqStart, f64 sortKey,
//	  f32 score, preScore, sumScore, f64 lnP, preLnP, sumLnP,
//	  u32 ndom, noverlaps, nenvelopes, nregions, nclustered,
//	  u32 flags, nreported, nincluded, bestDomain,
//	  u8 string presence bitmap (name, acc, desc), the present strings
//	  NUL-terminated, then ndom domain records
//
//	domain record
//	  i64 envFrom, envTo, aliFrom, aliTo,
//	  f32 envScore, domCorrection, domBias, oasc, bitScore, f64 lnP,
//	  u8 isReported, u8 isIncluded, one alignment record
//
//	alignment record (length-prefixed, self-inclusive)
//	  u32 total length, u32 length, hmmFrom, hmmTo, modelLen,
//	  u64 seqFrom, seqTo, seqLen,
//	  u8 optional-line bitmap (rf, mm, cs, ntseq, pp), then NUL-terminated
//	  strings: rfLine?, mmLine?, csLine?, model, midline, aseq, ntseq?,
//	  ppLine?, hmmName, hmmAcc, hmmDesc, seqName, seqAcc, seqDesc
//
// Both directions are implemented for every record type; the encode side
// backs the test harness.
package wire
