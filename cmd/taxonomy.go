package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Browse professions, departments and roles",
}

var professionsCmd = &cobra.Command{
	Use:   "professions",
	Short: "List professions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listOptions(cmd, func(ctx context.Context, c *taxonomy.Client) ([]taxonomy.Option, error) {
			return c.Professions(ctx)
		})
	},
}

var departmentsCmd = &cobra.Command{
	Use:   "departments <profession-id>",
	Short: "List departments of a profession",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return listOptions(cmd, func(ctx context.Context, c *taxonomy.Client) ([]taxonomy.Option, error) {
			return c.Departments(ctx, taxonomy.ID(id))
		})
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles <department-id>",
	Short: "List roles of a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return listOptions(cmd, func(ctx context.Context, c *taxonomy.Client) ([]taxonomy.Option, error) {
			return c.Roles(ctx, taxonomy.ID(id))
		})
	},
}

func init() {
	taxonomyCmd.AddCommand(professionsCmd)
	taxonomyCmd.AddCommand(departmentsCmd)
	taxonomyCmd.AddCommand(rolesCmd)
}

func listOptions(cmd *cobra.Command, query func(context.Context, *taxonomy.Client) ([]taxonomy.Option, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	c, err := e.taxonomy(cmd.Context())
	if err != nil {
		return err
	}
	opts, err := query(cmd.Context(), c)
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		fmt.Println("No entries.")
		return nil
	}
	for _, o := range opts {
		fmt.Printf("%6s  %s\n", strconv.FormatInt(int64(o.ID), 10), o.Name)
	}
	return nil
}

// resolveKey turns ids into a named role selection by walking the
// taxonomy, so generators get the same names the editor would send.
func resolveKey(ctx context.Context, c *taxonomy.Client, profession, department, role int64) (taxonomy.Key, error) {
	var key taxonomy.Key

	find := func(level string, opts []taxonomy.Option, id int64) (taxonomy.Option, error) {
		for _, o := range opts {
			if int64(o.ID) == id {
				return o, nil
			}
		}
		return taxonomy.Option{}, fmt.Errorf("%s %d not found", level, id)
	}

	opts, err := c.Professions(ctx)
	if err != nil {
		return key, err
	}
	if key.Profession, err = find("profession", opts, profession); err != nil {
		return key, err
	}
	if opts, err = c.Departments(ctx, key.Profession.ID); err != nil {
		return key, err
	}
	if key.Department, err = find("department", opts, department); err != nil {
		return key, err
	}
	if opts, err = c.Roles(ctx, key.Department.ID); err != nil {
		return key, err
	}
	if key.Role, err = find("role", opts, role); err != nil {
		return key, err
	}
	return key, nil
}
