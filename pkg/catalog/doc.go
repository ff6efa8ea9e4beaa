/*
Package catalog models the component library the editor places parts from.

A Definition describes one orderable component: its designator prefix, a
markdown description, and one or more Variants. Each Variant carries the
ordered list of Items (sub-parts) that must be placed one at a time. A
Definition may also carry a Footprint whose Pads serialize to and from the
S-expression primitive format.

Catalog data is read-only to the editor; resolving definitions at runtime
goes through the ports.Catalog interface.
*/
package catalog
