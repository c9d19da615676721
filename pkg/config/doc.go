/*
Package config manages configuration parsing and validation for goodimages.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   TOML   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
  - Holds the source repository, working copy, and output locations
  - Lets a config file override any of the built-in defaults
  - Anchors relative paths to an explicit base directory instead of the
    process working directory

🔄 Flow:
1. Start from Default()
2. Decode the optional config file on top of it
3. Validate and fill in anything left empty
4. Resolve relative paths against the caller's base directory

📝 Design Philosophy:
The rename tables are not part of the configuration. Only locations and the
image glob can change; what a canonical name looks like is fixed in code.

🔍 Example:

	cfg, err := config.Load(ctx, ".goodimages.yaml")
	if err != nil {
		return err
	}
	cfg = cfg.Resolve(cwd)
	fmt.Println(cfg.OutputDir("Characters"))
*/
package config
