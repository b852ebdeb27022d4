package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"pet-registry/internal/adapters/petsapi"

	"github.com/spf13/cobra"
)

func init() {
	// list
	var filter string
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List pets (own pets unless --filter is set)",
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.ListPets(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "", "filter_type (my_pets or any other value for all pets)")
	rootCmd.AddCommand(listCmd)

	// create-simple
	var simple petsapi.NewPet
	createSimpleCmd := &cobra.Command{
		Use:     "create-simple",
		Short:   "Create a pet without photo",
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.CreatePetSimple(cmd.Context(), simple)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	petFlags(createSimpleCmd, &simple)
	rootCmd.AddCommand(createSimpleCmd)

	// create
	var (
		full      petsapi.NewPet
		photoPath string
	)
	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a pet, optionally with a photo",
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var photo *petsapi.Photo
			if photoPath != "" {
				f, p, err := openPhoto(photoPath)
				if err != nil {
					return err
				}
				defer f.Close()
				photo = &p
			}
			out, err := c.CreatePet(cmd.Context(), full, photo)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	petFlags(createCmd, &full)
	createCmd.Flags().StringVar(&photoPath, "photo", "", "Path to a photo file")
	rootCmd.AddCommand(createCmd)

	// update
	var (
		newName, newType string
		newAge           int
	)
	updateCmd := &cobra.Command{
		Use:     "update PET_ID",
		Short:   "Update fields of an owned pet",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in petsapi.PetUpdate
			if cmd.Flags().Changed("name") {
				in.Name = &newName
			}
			if cmd.Flags().Changed("age") {
				in.Age = &newAge
			}
			if cmd.Flags().Changed("type") {
				in.AnimalType = &newType
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.UpdatePet(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	updateCmd.Flags().StringVarP(&newName, "name", "n", "", "New name")
	updateCmd.Flags().IntVar(&newAge, "age", 0, "New age")
	updateCmd.Flags().StringVarP(&newType, "type", "t", "", "New animal type")
	rootCmd.AddCommand(updateCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:     "delete PET_ID",
		Short:   "Delete an owned pet",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.DeletePet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	rootCmd.AddCommand(deleteCmd)

	// set-photo
	setPhotoCmd := &cobra.Command{
		Use:     "set-photo PET_ID FILE",
		Short:   "Replace the photo of an owned pet (jpg, jpeg or png)",
		Args:    cobra.ExactArgs(2),
		PreRunE: requireKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, photo, err := openPhoto(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.SetPhoto(cmd.Context(), args[0], photo)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	rootCmd.AddCommand(setPhotoCmd)
}

func petFlags(cmd *cobra.Command, in *petsapi.NewPet) {
	cmd.Flags().StringVarP(&in.AnimalType, "type", "t", "", "Animal type (required)")
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "Name (required)")
	cmd.Flags().IntVar(&in.Age, "age", 0, "Age (required)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")
}

// openPhoto abre el archivo y deduce el content type de la extensión.
func openPhoto(path string) (*os.File, petsapi.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, petsapi.Photo{}, fmt.Errorf("open photo: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, petsapi.Photo{
		Filename:    filepath.Base(path),
		ContentType: ct,
		Body:        f,
	}, nil
}
