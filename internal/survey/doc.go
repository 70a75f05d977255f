// Package survey holds the NSFG-specific part of the pipeline: reading
// the 2002 female respondent and pregnancy tables, cleaning the
// pregnancy table according to the codebook, checking that the two
// tables agree, and comparing first babies with others.
package survey
