package app

import (
	"github.com/spf13/cobra"

	"github.com/cyp0633/davkit/davclient"
)

func cardDAVHandler(s *session, name string) (*davclient.CardDAVHandler, error) {
	cfg, err := s.server(name)
	if err != nil {
		return nil, err
	}
	return davclient.NewCardDAVHandler(cfg, s.clientOptions()...)
}

func newAddressBooksCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "addressbooks NAME",
		Short: "List the address books of a server",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := cardDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			books, err := h.ListAddressBooks(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(books)
		}),
	}
}

func newContactsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Query and change contacts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list NAME ADDRESSBOOK_PATH",
		Short: "List the contacts of an address book",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := cardDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			contacts, err := h.GetContacts(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return s.print(contacts)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "search NAME ADDRESSBOOK_PATH QUERY",
		Short: "Search contacts by full name",
		Args:  cobra.ExactArgs(3),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := cardDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			contacts, err := h.SearchContacts(cmd.Context(), args[1], args[2])
			if err != nil {
				return err
			}
			return s.print(contacts)
		}),
	})
	cmd.AddCommand(newContactsCreateCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME CONTACT_PATH",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := cardDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			if err := h.DeleteContact(cmd.Context(), args[1]); err != nil {
				return err
			}
			return s.print(map[string]string{"deleted": args[1]})
		}),
	})
	return cmd
}

func newContactsCreateCmd(opts *globalOptions) *cobra.Command {
	var c davclient.Contact

	cmd := &cobra.Command{
		Use:   "create NAME ADDRESSBOOK_PATH",
		Short: "Create a contact",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := cardDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			path, err := h.CreateContact(cmd.Context(), args[1], c)
			if err != nil {
				return err
			}
			return s.print(map[string]string{"path": path})
		}),
	}
	cmd.Flags().StringVar(&c.UID, "uid", "", "Contact UID, generated when empty")
	cmd.Flags().StringVar(&c.FN, "fn", "", "Full name")
	cmd.Flags().StringVar(&c.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&c.Organization, "org", "", "Organization")
	_ = cmd.MarkFlagRequired("fn")
	return cmd
}
