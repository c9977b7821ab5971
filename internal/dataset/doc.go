// Package dataset models the contents of a self-describing array file.
//
// A [File] exposes the file's global attributes, its named dimensions and
// its variables. Every [Variable] carries an ordered list of [Dimension]s
// (its shape) and an ordered [Attributes] map whose values are tagged as
// numeric or string, so reserved names such as _FillValue, missing_value,
// long_name and units are read through explicit accessors.
//
// Reading is delegated to github.com/batchatco/go-native-netcdf, which
// understands both the classic CDF and the HDF5-based NetCDF4 layouts.
//
// # Example
//
//	f, err := dataset.Open("tas.nc")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	v, _ := f.DataVariable("")
//	fill, ok := v.Attributes.FillValue()
package dataset
