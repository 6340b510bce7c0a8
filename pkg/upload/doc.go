// Package upload provides temporary file upload storage for viaduct
// applications.
//
// Uploads arrive through a declared POST route, are stored under a random
// temp ID, and are claimed (consumed) later by application handlers:
//
//	store, _ := upload.NewDiskStore("/tmp/uploads", 10<<20)
//	reg.Post("/upload", upload.Handler(store))
//
//	// Later, in a handler that received the temp_id:
//	file, err := upload.Claim(c.StdContext(), store, tempID)
//
// Two Store backends ship with the package: DiskStore for local
// filesystems and S3Store for AWS S3. Unclaimed files are removed by
// periodic Cleanup calls.
package upload
