/*
Package operation runs one export of the genshin-optimizer image assets.

	+-------------+     +-------------+     +-------------+     +-------------+
	|    Sync     | --> |    Clear    | --> |   Collect   | --> |  Normalize  |
	| (pkg/repo)  |     |  (outputs)  |     |(pkg/collect)|     | (normalize) |
	+-------------+     +-------------+     +-------------+     +-------------+

🎯 Purpose:
- Keeps the working copy current
- Rebuilds every category's output from scratch
- Reports what was copied and renamed

🔄 Flow:
1. Takes the run lock next to the working copy
2. Syncs the repository (skipped for export)
3. Deletes each category's output and any leftover staging directory
4. Copies images category by category
5. Renames files in categories that have rules

⚡ Key Responsibilities:
- Ordering the steps
- Stopping at the first failure
- Keeping two runs from touching the same output

🔍 Example:

	p, err := operation.New(operation.Options{Config: cfg, Synchronizer: sync})
	report, err := p.Run(ctx)
*/
package operation
