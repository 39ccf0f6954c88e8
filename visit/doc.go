// Package visit enumerates the files and directories below a root path,
// optionally filters them, and notifies subscribers as each entry is found.
//
// A Visitor walks the tree depth first. In every directory the files come
// first, then each subdirectory followed by its contents:
//
//	v := visit.New("/data", visit.Options{
//		Filter: visit.Predicate(func(e visit.Entry) bool {
//			return strings.HasSuffix(e.Name(), ".txt")
//		}),
//	})
//	v.OnFilteredFileFound(func(c *visit.Control, path string) {
//		if strings.Contains(path, "secret") {
//			c.Skip() // keep it out of the results
//		}
//	})
//	if err := v.Execute(context.Background()); err != nil {
//		return err
//	}
//	for e := range v.All() {
//		fmt.Println(e)
//	}
//
// Handlers steer a running traversal through the Control they receive:
// Skip drops the entry being handled, Stop ends the walk once that entry
// is done. Results accumulate across calls to Execute until ClearResults.
//
// Watch reports changes below a directory using fsnotify:
//
//	err := visit.Watch(ctx, "/data", visit.WatchOptions{Recursive: true},
//		func(ctx context.Context, r visit.WatchResult) error {
//			if r.Error != nil {
//				return r.Error
//			}
//			fmt.Printf("%s: %s\n", r.Message.Event, r.Message.Entry)
//			return nil
//		})
package visit
