// Package reader picks a reader for a path on disk by asking registered
// factories in order. Directories always get a DirectoryReader; files no
// factory recognizes get an Unknown reader carrying their detected MIME
// type.
//
// Factories see the path and the first MagicSize bytes of the file:
//
//	r, err := reader.Open(afero.NewOsFs(), "data/t2m.grib")
//	if err != nil {
//		return err
//	}
//	fmt.Println(r.Format()) // grib
package reader
