/*
Package nsfg reads the fixed-width microdata files distributed by the
National Survey of Family Growth, along with the Stata dictionary
(.dct) files that describe their column layout.

The data are returned as a Dataset, a collection of equal-length
Series values.  A Series is a column of float64 or string data with an
explicit mask for missing values; survey codes such as "refused" or
"not ascertained" are represented by the mask, never by NaN or a
sentinel number.

The package also includes the small set of descriptive statistics used
to explore the data: frequency tables, means, population variances,
histograms and an effect size for comparing two groups.  Missing
values are excluded from all of them.
*/
package nsfg
