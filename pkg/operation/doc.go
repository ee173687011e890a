/*
Package operation implements the two operations of xfile: copy and restore.

	+-------------+        +-------------+
	|   Source    |  Copy  | Destination |
	|    tree     +------->+    tree     |
	+-------------+        +------+------+
	                              |
	                              | Restore
	                              v
	                       +-------------+
	                       |  Untagged   |
	                       |    tree     |
	                       +-------------+

🎯 Copy:
- Mirrors every directory not pruned by the ignore set
- Text-like files are written as <name><suffix>
- Everything else is written under its own name with mode and mtime kept
- Each file lands through a temp file and a rename, never half written

🔄 Restore:
- Walks the whole tree, ignore rules do not apply
- <name><suffix> is renamed to <name>
- When <name> already exists the tagged file is deleted and <name> is left alone

⚡ Failures:
Only configuration problems stop a run. A file that cannot be read, written,
renamed or deleted is reported, added to Result.Failures, and the walk moves on.

🔍 Example:

	h, err := operation.New(operation.Options{Config: cfg, Reporter: reporter})
	if err != nil {
		return err
	}
	res, err := operation.NewRunner(h, "").Run(ctx)
*/
package operation
